// Package server wires and runs the development backend.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/dmitrijs2005/tradeboard/internal/server/api"
	"github.com/dmitrijs2005/tradeboard/internal/server/config"
	"github.com/dmitrijs2005/tradeboard/internal/server/listings"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	"github.com/prometheus/client_golang/prometheus"
)

// Backend is a fully wired, seeded backend.
type Backend struct {
	Users    *users.Service
	Listings *listings.Service
	Handler  http.Handler

	store Store
}

// NewBackend opens the store selected by cfg.DatabaseDSN, seeds the
// configured staff accounts and builds the HTTP handler. reg may be nil.
func NewBackend(ctx context.Context, cfg *config.Config, log logging.Logger, reg *prometheus.Registry, opts ...users.Option) (*Backend, error) {
	store, err := OpenStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	us := users.NewService(store.Users(), []byte(cfg.SecretKey), cfg.TokenValidity, opts...)
	ls := listings.NewService(store.Listings(), nil)

	if err := us.EnsureAccount(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, users.RoleAdmin); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if err := us.EnsureAccount(ctx, cfg.ModeratorEmail, cfg.ModeratorPassword, cfg.ModeratorName, users.RoleModerator); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed moderator: %w", err)
	}

	h := api.NewRouter(api.Deps{
		Users:       us,
		Listings:    ls,
		Logger:      log,
		RateLimiter: api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Registry:    reg,
	})

	return &Backend{Users: us, Listings: ls, Handler: h, store: store}, nil
}

func (b *Backend) Close() error {
	return b.store.Close()
}
