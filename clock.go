package ttlcache

import "time"

// Clock provides time operations for the cache.
// The default implementation uses time.Now().
//
// The cache only looks at whole seconds, so sub-second precision returned by
// a Clock is ignored.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time {
	return f()
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// unix returns the clock's current time in Unix seconds.
func unix(clk Clock) int64 {
	return clk.Now().Unix()
}
