package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/session"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is enforced locally before a signup is sent.
const MinPasswordLength = 6

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Signup: create an account; it does not sign in.
//   - Logout: drop the cached session.
//   - Whoami: return the cached session, or nil.
//   - Ping: check server liveness with a single attempt.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Signup(ctx context.Context, form SignupForm) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
}

// SignupForm is what the user typed on the signup screen.
type SignupForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

var signupValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate returns a *client.ValidationError for the first bad field.
// A mismatched confirmation is reported before a short password.
func (f SignupForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return &client.ValidationError{Field: "confirm_password", Message: "does not match the password"}
	}

	err := signupValidator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &client.ValidationError{Message: err.Error()}
	}

	switch fe := verrs[0]; fe.StructField() {
	case "Name":
		return &client.ValidationError{Field: "name", Message: "is required"}
	case "Email":
		return &client.ValidationError{Field: "email", Message: "must be a valid email address"}
	case "Password":
		return &client.ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters long", MinPasswordLength)}
	default:
		return &client.ValidationError{Field: fe.Field(), Message: "is invalid"}
	}
}

type authService struct {
	client client.Client
	store  session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store session.Store) AuthService {
	return &authService{client: c, store: store}
}

// Login authenticates and replaces any cached session with the new one.
func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Save(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) Signup(ctx context.Context, form SignupForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return a.client.Signup(ctx, form.Email, form.Password, form.Name)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Whoami(ctx context.Context) (*models.Session, error) {
	return a.store.Load(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
