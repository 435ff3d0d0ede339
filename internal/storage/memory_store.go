package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// MemoryStore is a map backed Store.
type MemoryStore struct {
	mu     sync.RWMutex
	chains map[string][]model.Block
	keys   map[string]model.BillKeys
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chains: make(map[string][]model.Block),
		keys:   make(map[string]model.BillKeys),
	}
}

func (s *MemoryStore) LoadBlocks(_ context.Context, billName string) ([]model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks, ok := s.chains[billName]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.Block(nil), blocks...), nil
}

func (s *MemoryStore) SaveBlocks(_ context.Context, billName string, blocks []model.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chains[billName] = append([]model.Block(nil), blocks...)
	return nil
}

func (s *MemoryStore) HasBill(_ context.Context, billName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.chains[billName]
	return ok, nil
}

func (s *MemoryStore) ListBills(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.chains))
	for name := range s.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) LoadKeys(_ context.Context, billName string) (model.BillKeys, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, ok := s.keys[billName]
	if !ok {
		return model.BillKeys{}, ErrNotFound
	}
	return keys, nil
}

func (s *MemoryStore) SaveKeys(_ context.Context, billName string, keys model.BillKeys) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[billName] = keys
	return nil
}
