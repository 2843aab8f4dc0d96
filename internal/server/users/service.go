package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation error")
)

type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
	now           func() time.Time
}

type Option func(*Service)

// WithBcryptCost lowers hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(repo Repository, secret []byte, tokenValidity time.Duration, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		jwtSecret:     secret,
		tokenValidity: tokenValidity,
		bcryptCost:    bcrypt.DefaultCost,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, email, password, name, role string) (*User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if role == "" {
		role = RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
}

// Login checks the password and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its current user. The role is
// taken from the account, not from the token.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// EnsureAccount registers the account unless the email already exists.
func (s *Service) EnsureAccount(ctx context.Context, email, password, name, role string) error {
	if email == "" {
		return nil
	}
	_, err := s.Register(ctx, email, password, name, role)
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	return err
}
