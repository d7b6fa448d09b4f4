package dutchauction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e18(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestEvaluateCurveAnchorsToLiveMarketPrice(t *testing.T) {
	require := require.New(t)

	// market reads well above the configured start bound; at zero elapsed the
	// curve must return the live price, untouched by the static bounds
	sell := OracleReading{Price: e18(3), Decimals: 18}
	buy := OracleReading{Price: e18(1), Decimals: 18}

	limit, err := EvaluateCurve(sell, buy, e18(2), e18(1), 600, 0)
	require.NoError(err)
	require.Zero(limit.Price.Cmp(e18(3)))
	require.Zero(limit.Price.Cmp(limit.CurrentPrice))
}

func TestEvaluateCurveDecay(t *testing.T) {
	require := require.New(t)

	sell := OracleReading{Price: e18(2), Decimals: 18}
	buy := OracleReading{Price: e18(1), Decimals: 18}

	// bounds span 1e18 over 100s: slope 1e16/s
	limit, err := EvaluateCurve(sell, buy, e18(2), e18(1), 100, 50)
	require.NoError(err)

	want := new(big.Int).Add(e18(1), new(big.Int).Div(e18(1), big.NewInt(2))) // 1.5e18
	require.Zero(limit.Price.Cmp(want))

	limit, err = EvaluateCurve(sell, buy, e18(2), e18(1), 100, 100)
	require.NoError(err)
	require.Zero(limit.Price.Cmp(e18(1)))
}

func TestEvaluateCurveZeroBuyPriceFaults(t *testing.T) {
	sell := OracleReading{Price: e18(2), Decimals: 18}

	_, err := EvaluateCurve(sell, OracleReading{Price: big.NewInt(0), Decimals: 18}, e18(2), e18(1), 600, 0)
	require.ErrorIs(t, err, ErrOracleFault)

	_, err = EvaluateCurve(sell, OracleReading{Price: big.NewInt(-5), Decimals: 18}, e18(2), e18(1), 600, 0)
	require.ErrorIs(t, err, ErrOracleFault)

	_, err = EvaluateCurve(sell, OracleReading{Price: nil, Decimals: 18}, e18(2), e18(1), 600, 0)
	require.ErrorIs(t, err, ErrOracleFault)
}

func TestEvaluateCurveUnderflowFaults(t *testing.T) {
	// live price far below the configured bounds: the decay term overtakes it
	// and the subtraction must fault instead of wrapping
	sell := OracleReading{Price: big.NewInt(1), Decimals: 18}
	buy := OracleReading{Price: e18(1), Decimals: 18}

	_, err := EvaluateCurve(sell, buy, e18(1000), e18(1), 100, 100)
	require.ErrorIs(t, err, ErrArithmeticFault)
}

func TestEvaluateCurveOverflowFaults(t *testing.T) {
	huge := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))

	sell := OracleReading{Price: huge, Decimals: 18}
	buy := OracleReading{Price: big.NewInt(1), Decimals: 18}

	_, err := EvaluateCurve(sell, buy, e18(2), e18(1), 600, 0)
	require.ErrorIs(t, err, ErrArithmeticFault)
}

func TestEvaluateCurveAscendingScheduleRejected(t *testing.T) {
	sell := OracleReading{Price: e18(2), Decimals: 18}
	buy := OracleReading{Price: e18(1), Decimals: 18}

	_, err := EvaluateCurve(sell, buy, e18(1), e18(2), 600, 0)
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestEvaluateCurveSlopeTruncation(t *testing.T) {
	assert := assert.New(t)

	// spread 10 over duration 3: ideal slope 3.33/s, truncated to 3. The
	// realized discount runs under the continuous line, never over.
	sell := OracleReading{Price: big.NewInt(100), Decimals: 0}
	buy := OracleReading{Price: big.NewInt(1), Decimals: 0}

	limit, err := EvaluateCurve(sell, buy, big.NewInt(100), big.NewInt(90), 3, 3)
	assert.NoError(err)
	assert.Equal(int64(91), limit.Price.Int64()) // 100 - 3*3, one unit shy of the ideal 90
}

func TestMulDiv(t *testing.T) {
	require := require.New(t)

	got, err := mulDiv(big.NewInt(10), big.NewInt(7), big.NewInt(3))
	require.NoError(err)
	require.Equal(int64(23), got.Int64()) // truncating, not rounding

	_, err = mulDiv(big.NewInt(10), big.NewInt(7), big.NewInt(0))
	require.ErrorIs(err, ErrArithmeticFault)

	_, err = mulDiv(big.NewInt(-1), big.NewInt(7), big.NewInt(3))
	require.ErrorIs(err, ErrArithmeticFault)

	halfMax := new(big.Int).Lsh(big.NewInt(1), 200)
	_, err = mulDiv(halfMax, halfMax, big.NewInt(1))
	require.ErrorIs(err, ErrArithmeticFault)
}

func FuzzEvaluateCurveBoundedDecay(f *testing.F) {
	f.Add(uint8(10), uint8(60), uint8(5))
	f.Add(uint8(1), uint8(1), uint8(1))
	f.Add(uint8(60), uint8(60), uint8(60))

	f.Fuzz(func(t *testing.T, steps, timeStep, elapsedStep uint8) {
		if steps == 0 || timeStep == 0 {
			t.Skip()
		}
		duration := uint32(steps) * uint32(timeStep)
		if duration > 3600 {
			t.Skip()
		}
		elapsed := uint64(elapsedStep%steps+1) * uint64(timeStep)
		if elapsed > uint64(duration) {
			t.Skip()
		}

		startPrice := e18(2)
		endPrice := e18(1)

		// anchor the live price to the start bound so the static bounds are
		// also the curve's value bounds
		sell := OracleReading{Price: startPrice, Decimals: 18}
		buy := OracleReading{Price: e18(1), Decimals: 18}

		limit, err := EvaluateCurve(sell, buy, startPrice, endPrice, duration, elapsed)
		if err != nil {
			t.Fatalf("curve faulted for duration=%d elapsed=%d: %v", duration, elapsed, err)
		}

		if limit.Price.Cmp(endPrice) < 0 {
			t.Fatalf("limit %s below end bound %s", limit.Price, endPrice)
		}
		if limit.Price.Cmp(startPrice) > 0 {
			t.Fatalf("limit %s above start bound %s", limit.Price, startPrice)
		}
	})
}
