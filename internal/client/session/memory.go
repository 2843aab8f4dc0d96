package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	user *models.User
	cred string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Identity(context.Context) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *MemoryStore) Credential(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred, nil
}

func (m *MemoryStore) Load(ctx context.Context) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil || m.cred == "" {
		return nil, nil
	}
	return &models.Session{User: *m.user, Credential: m.cred}, nil
}

func (m *MemoryStore) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := s.User
	m.user, m.cred = &u, s.Credential
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user, m.cred = nil, ""
	return nil
}
