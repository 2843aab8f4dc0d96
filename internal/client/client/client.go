package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/transport"
)

// Client is the backend API contract.
type Client interface {
	Categories(ctx context.Context) ([]models.Category, error)
	ListByCategory(ctx context.Context, category string) ([]models.Listing, error)
	GetByID(ctx context.Context, category string, id int64) (models.Listing, error)
	Create(ctx context.Context, category string, draft models.Draft, credential string) (int64, error)
	Update(ctx context.Context, category string, id int64, patch models.Patch, credential string) error
	Delete(ctx context.Context, category string, id int64, credential string) error
	ModerateDelete(ctx context.Context, category string, id int64, credential string) error
	Login(ctx context.Context, email, password string) (models.Session, error)
	Signup(ctx context.Context, email, password, name string) error
	AdminUsers(ctx context.Context, credential string) ([]models.UserPosts, error)
	// Ping makes a single unretried read to tell whether the backend is up.
	Ping(ctx context.Context) error
}

// Sender is the subset of transport.Transport used here.
type Sender interface {
	Send(ctx context.Context, req *http.Request, check transport.CheckFunc) (*http.Response, error)
	SendOnce(ctx context.Context, req *http.Request, check transport.CheckFunc) (*http.Response, error)
}
