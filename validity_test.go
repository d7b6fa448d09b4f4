package dutchauction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStartTs = uint32(1700000100) // multiple of 60 and of 10

func TestComputeWindowPreStartClampsToZero(t *testing.T) {
	require := require.New(t)

	// one second before the start: bucketed now precedes startTs, the
	// evaluation must succeed at zero elapsed rather than fail
	w, err := ComputeWindow(uint64(testStartTs)-1, testStartTs, 600, 60)
	require.NoError(err)
	require.Equal(uint64(0), w.Elapsed)
	require.Equal(PhasePending, w.Phase)
	require.Equal(w.BucketedNow+60, w.ValidTo)

	// and exactly at the start it is active, still at zero elapsed
	w, err = ComputeWindow(uint64(testStartTs), testStartTs, 600, 60)
	require.NoError(err)
	require.Equal(uint64(0), w.Elapsed)
	require.Equal(PhaseActive, w.Phase)
	require.Equal(uint64(testStartTs)+60, w.ValidTo)
}

func TestComputeWindowElapsedOnGrid(t *testing.T) {
	tests := []struct {
		name    string
		offset  uint64
		elapsed uint64
	}{
		{"start of window", 0, 0},
		{"mid first step", 30, 0},
		{"exactly one step", 60, 60},
		{"mid second step", 95, 60},
		{"several steps in", 250, 240},
		{"last step", 600, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ComputeWindow(uint64(testStartTs)+tt.offset, testStartTs, 600, 60)
			require.NoError(t, err)
			assert.Equal(t, tt.elapsed, w.Elapsed)
			assert.Zero(t, w.Elapsed%60, "elapsed must be a multiple of the step")
			assert.Equal(t, w.BucketedNow+60, w.ValidTo)
		})
	}
}

func TestComputeWindowExpired(t *testing.T) {
	require := require.New(t)

	// elapsed == duration is the last valid step
	w, err := ComputeWindow(uint64(testStartTs)+600, testStartTs, 600, 60)
	require.NoError(err)
	require.Equal(uint64(600), w.Elapsed)

	// one step past the duration the auction is gone for good
	_, err = ComputeWindow(uint64(testStartTs)+660, testStartTs, 600, 60)
	require.ErrorIs(err, ErrOrderNotValid)

	var notValid *OrderNotValidError
	require.True(errors.As(err, &notValid))
	require.Equal("auction ended", notValid.Reason)

	// far in the future as well
	_, err = ComputeWindow(uint64(testStartTs)+1e6, testStartTs, 600, 60)
	require.ErrorIs(err, ErrOrderNotValid)
}

func TestComputeWindowUnalignedStart(t *testing.T) {
	require := require.New(t)

	// startTs is an absolute boundary and is not itself bucketed: with a
	// start 30s into a window, the first bucket at or after it is 30s later
	start := testStartTs + 30
	w, err := ComputeWindow(uint64(start)+29, start, 600, 60)
	require.NoError(err)
	require.Equal(PhasePending, w.Phase)
	require.Equal(uint64(0), w.Elapsed)

	w, err = ComputeWindow(uint64(start)+30, start, 600, 60)
	require.NoError(err)
	require.Equal(PhaseActive, w.Phase)
	require.Equal(uint64(0), w.Elapsed) // (bucketedNow-start)/60 truncates to 0
}

func TestComputeWindowZeroTimeStep(t *testing.T) {
	_, err := ComputeWindow(uint64(testStartTs), testStartTs, 600, 0)
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestAuctionPhaseString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("pending", PhasePending.String())
	assert.Equal("active", PhaseActive.String())
	assert.Equal("expired", PhaseExpired.String())
	assert.Equal("phase(7)", AuctionPhase(7).String())
}
