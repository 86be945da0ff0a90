package config

import (
	"strings"
	"sync"
)

// CredentialStore holds mutable secrets such as API keys. Values can be
// replaced at runtime through the configuration endpoint; adapters read
// the store at the start of each call so updates apply without restart.
type CredentialStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{values: make(map[string]string)}
}

func (s *CredentialStore) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

func (s *CredentialStore) Set(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = strings.TrimSpace(value)
}

// Seed stores a value only when the credential is not already set.
func (s *CredentialStore) Seed(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[name]; !ok {
		s.values[name] = strings.TrimSpace(value)
	}
}
