package dutchauction

// BucketTimestamp floors a timestamp onto the step grid using truncating
// integer division. Every call within the same step window maps to the same
// grid point, so independent pollers inside one window observe identical
// inputs. step must be greater than zero.
func BucketTimestamp(timestamp, step uint64) uint64 {
	return (timestamp / step) * step
}
