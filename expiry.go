package ttlcache

import (
	"fmt"
	"time"
)

// ImmortalTTL is the lifetime given to entries stored with Immortal. It is
// long enough to never matter in practice while keeping every expiry an
// ordinary timestamp.
const ImmortalTTL = 100 * 365 * 24 * time.Hour

// Expiry selects how an entry's absolute expiry is computed. At most one
// Expiry may be passed to an operation; with none the cache's default expiry
// applies.
type Expiry func(*expirySpec)

type expiryKind int

const (
	expireDefault expiryKind = iota
	expireIn
	expireAt
	expireImmortal
)

type expirySpec struct {
	kind expiryKind
	secs int64 // relative seconds for expireIn, Unix seconds for expireAt
	n    int
}

// ExpireIn expires the entry d after it is stored. d is truncated to whole
// seconds.
func ExpireIn(d time.Duration) Expiry {
	return func(s *expirySpec) {
		s.kind = expireIn
		s.secs = int64(d / time.Second)
		s.n++
	}
}

// ExpireAt expires the entry at the absolute time t.
func ExpireAt(t time.Time) Expiry {
	return func(s *expirySpec) {
		s.kind = expireAt
		s.secs = t.Unix()
		s.n++
	}
}

// Immortal keeps the entry for ImmortalTTL.
func Immortal() Expiry {
	return func(s *expirySpec) {
		s.kind = expireImmortal
		s.n++
	}
}

func resolveExpiry(opts []Expiry) (expirySpec, error) {
	var s expirySpec
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.n > 1 {
		return expirySpec{}, fmt.Errorf("%w: at most one of ExpireIn, ExpireAt and Immortal may be given, got %d", ErrInvalidArgument, s.n)
	}
	return s, nil
}

// at returns the absolute expiry in Unix seconds.
func (s expirySpec) at(now, defaultSecs int64) int64 {
	switch s.kind {
	case expireIn:
		return now + s.secs
	case expireAt:
		return s.secs
	case expireImmortal:
		return now + int64(ImmortalTTL/time.Second)
	default:
		return now + defaultSecs
	}
}
