package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithStartID sets the first id the store assigns.
func WithStartID(id int) Option {
	return func(s *MemoryStore) {
		if id > 0 {
			s.nextID = id
		}
	}
}
