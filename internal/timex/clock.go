package timex

import "time"

// Clock returns the current time as epoch milliseconds.
type Clock func() int64

// NowMillis is the wall clock used for record timestamps.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FixedClock returns a Clock that always reports ms. Useful in tests.
func FixedClock(ms int64) Clock {
	return func() int64 { return ms }
}
