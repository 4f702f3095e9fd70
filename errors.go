package ttlcache

import "errors"

var (
	// ErrCacheMiss is returned when a key has no live value and there is no
	// way to produce one. It is an ordinary outcome, not a fault.
	ErrCacheMiss = errors.New("ttlcache: cache miss")

	// ErrInvalidArgument is returned when a caller breaks an operation's
	// contract, such as a Put without a producer or conflicting expiry options.
	ErrInvalidArgument = errors.New("ttlcache: invalid argument")
)
