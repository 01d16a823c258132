package prefs

// MemoryStore keeps preferences for the lifetime of the process only.
type MemoryStore struct {
	values map[string]string
	// Writes counts successful Set calls.
	Writes int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
