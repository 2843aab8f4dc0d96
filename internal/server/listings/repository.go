package listings

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("listing not found")
	ErrUnknownCategory = errors.New("invalid category")
)

type Repository interface {
	Categories(ctx context.Context) ([]Category, error)
	HasCategory(ctx context.Context, key string) (bool, error)
	Count(ctx context.Context, category string) (int, error)
	Create(ctx context.Context, l *Listing) (*Listing, error)
	Get(ctx context.Context, category string, id int64) (*Listing, error)
	List(ctx context.Context, category string) ([]*Listing, error)
	ListByUser(ctx context.Context, userID int64) ([]*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, category string, id int64) error
}
