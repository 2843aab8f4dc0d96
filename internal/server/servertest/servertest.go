// Package servertest starts a development backend on a loopback port for
// tests of the HTTP client and the flows built on it.
package servertest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/dmitrijs2005/tradeboard/internal/server"
	"github.com/dmitrijs2005/tradeboard/internal/server/config"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	*httptest.Server
	Backend *server.Backend
}

// New starts a backend with no seeded accounts and no rate limit. It is
// closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AdminEmail = ""
	cfg.RateLimitRPS = 0

	b, err := server.NewBackend(context.Background(), cfg, logging.Discard(), nil, users.WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("servertest: %v", err)
	}

	s := &Server{Server: httptest.NewServer(b.Handler), Backend: b}
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root the client is configured with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Register creates an account directly in the backend.
func (s *Server) Register(t testing.TB, email, password, name, role string) *users.User {
	t.Helper()
	u, err := s.Backend.Users.Register(context.Background(), email, password, name, role)
	if err != nil {
		t.Fatalf("servertest: register %s: %v", email, err)
	}
	return u
}

// Token logs in directly and returns a bearer token.
func (s *Server) Token(t testing.TB, email, password string) string {
	t.Helper()
	_, tok, err := s.Backend.Users.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("servertest: login %s: %v", email, err)
	}
	return tok
}
