package repository

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithIDGenerator overrides the ID generator used for inserts that
// carry no ID. Mainly for deterministic tests.
func WithIDGenerator(gen func() string) MemoryOption {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
