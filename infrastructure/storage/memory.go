package storage

import "sync"

type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemoryStore cria um Store em memória. É o backend dos testes e do modo
// sem banco de dados; nada sobrevive ao reinício do processo.
func NewMemoryStore() Store {
	return &memoryStore{
		blobs: make(map[string]string),
	}
}

func (s *memoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	return value, ok, nil
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = value
	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}
