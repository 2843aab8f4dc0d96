package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/server/listings"
	"github.com/dmitrijs2005/tradeboard/internal/server/migrations"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Store vends the repositories behind the backend services.
type Store interface {
	Users() users.Repository
	Listings() listings.Repository
	Close() error
}

type memoryStore struct {
	users    *users.MemoryRepository
	listings *listings.MemoryRepository
}

func NewMemoryStore() Store {
	return &memoryStore{
		users:    users.NewMemoryRepository(),
		listings: listings.NewMemoryRepository(listings.DefaultCategories()),
	}
}

func (s *memoryStore) Users() users.Repository       { return s.users }
func (s *memoryStore) Listings() listings.Repository { return s.listings }
func (s *memoryStore) Close() error                  { return nil }

type postgresStore struct {
	db       *sql.DB
	users    *users.PostgresRepository
	listings *listings.PostgresRepository
}

func (s *postgresStore) Users() users.Repository       { return s.users }
func (s *postgresStore) Listings() listings.Repository { return s.listings }
func (s *postgresStore) Close() error                  { return s.db.Close() }

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// OpenPostgresStore connects to dsn and brings the schema up to date.
func OpenPostgresStore(ctx context.Context, dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s, err := newPostgresStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newPostgresStore(ctx context.Context, db *sql.DB) (*postgresStore, error) {
	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &postgresStore{
		db:       db,
		users:    users.NewPostgresRepository(db),
		listings: listings.NewPostgresRepository(db),
	}, nil
}

// OpenStore picks PostgreSQL when dsn is set and memory otherwise.
func OpenStore(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return NewMemoryStore(), nil
	}
	return OpenPostgresStore(ctx, dsn)
}
