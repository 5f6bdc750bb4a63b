// Package snapstore persists the loaded snapshot in a key-value store.
package snapstore

import "time"

// Option applies a configuration option to the RedisStore.
type Option func(*RedisStore)

// WithKey sets the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTTL sets the expiry on the stored snapshot. A snapshot older than
// the staleness window is useless, so the TTL normally matches it.
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}
