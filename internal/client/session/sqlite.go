package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of a local database.
type SQLiteStore struct {
	db   *sql.DB
	repo *metadataRepository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: newMetadataRepository(db)}
}

func (s *SQLiteStore) Identity(ctx context.Context) (*models.User, error) {
	raw, err := s.repo.Get(ctx, KeyIdentity)
	if err != nil || raw == nil {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) Credential(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, KeyCredential)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	u, err := s.Identity(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	cred, err := s.Credential(ctx)
	if err != nil || cred == "" {
		return nil, err
	}
	return &models.Session{User: *u, Credential: cred}, nil
}

// Save writes both halves in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	identity, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newMetadataRepository(tx)
		if err := repo.Set(ctx, KeyIdentity, identity); err != nil {
			return err
		}
		return repo.Set(ctx, KeyCredential, []byte(sess.Credential))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return newMetadataRepository(tx).Delete(ctx, KeyIdentity, KeyCredential)
	})
}
