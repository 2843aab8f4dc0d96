package session

import (
	"context"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

// Keys under which the session halves are stored.
const (
	KeyIdentity   = "identity"
	KeyCredential = "credential"
)

// Store is the session persistence contract.
type Store interface {
	// Load returns the full session, or nil, nil when either half is absent.
	Load(ctx context.Context) (*models.Session, error)
	// Identity returns the cached user, or nil, nil when absent.
	Identity(ctx context.Context) (*models.User, error)
	// Credential returns the cached token, or "" when absent.
	Credential(ctx context.Context) (string, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
