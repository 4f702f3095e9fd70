package ttlcache

type entry[V any] struct {
	value     V
	expiresAt int64 // Unix seconds
}

func (e *entry[V]) isLive(now int64) bool {
	return e.expiresAt > now
}

func (e *entry[V]) ttl(now int64) int64 {
	return e.expiresAt - now
}
