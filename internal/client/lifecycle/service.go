package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/authz"
	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/session"
	"github.com/dmitrijs2005/tradeboard/internal/logging"
)

var (
	ErrNotPermitted = errors.New("not permitted")
	ErrCancelled    = errors.New("cancelled")
)

type Service struct {
	client  client.Client
	store   session.Store
	confirm Confirmer
	guard   *Guard
	log     logging.Logger
}

type Option func(*Service)

func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithGuard shares an in-flight guard between services.
func WithGuard(g *Guard) Option {
	return func(s *Service) { s.guard = g }
}

func NewService(c client.Client, store session.Store, confirm Confirmer, opts ...Option) *Service {
	s := &Service{
		client:  c,
		store:   store,
		confirm: confirm,
		guard:   NewGuard(),
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.confirm == nil {
		s.confirm = AlwaysConfirm
	}
	return s
}

// Create submits a new listing and returns its id.
func (s *Service) Create(ctx context.Context, category string, draft models.Draft) (int64, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	if !authz.CanCreate(sess) {
		return 0, client.ErrUnauthenticated
	}

	release, err := s.guard.Acquire(createKey(category))
	if err != nil {
		return 0, err
	}
	defer release()

	id, err := s.client.Create(ctx, category, draft, sess.Credential)
	if err != nil {
		return 0, err
	}
	s.log.Info(ctx, "listing created", "category", category, "id", id)
	return id, nil
}

// Edit sends patch and returns the listing as the backend now holds it.
func (s *Service) Edit(ctx context.Context, listing models.Listing, patch models.Patch) (models.Listing, error) {
	sess, err := s.authorize(ctx, listing, EventEdit, authz.CapEdit)
	if err != nil {
		return models.Listing{}, err
	}

	release, err := s.guard.Acquire(listingKey("edit", listing.Category, listing.ID))
	if err != nil {
		return models.Listing{}, err
	}
	defer release()

	if err := s.client.Update(ctx, listing.Category, listing.ID, patch, sess.Credential); err != nil {
		return models.Listing{}, err
	}

	fresh, err := s.client.GetByID(ctx, listing.Category, listing.ID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("reload edited listing: %w", err)
	}
	return fresh, nil
}

// Delete removes the listing for good after confirmation.
func (s *Service) Delete(ctx context.Context, listing models.Listing) error {
	sess, err := s.authorize(ctx, listing, EventDelete, authz.CapDelete)
	if err != nil {
		return err
	}
	if err := s.ask(ctx, DeletePrompt); err != nil {
		return err
	}

	release, err := s.guard.Acquire(listingKey("delete", listing.Category, listing.ID))
	if err != nil {
		return err
	}
	defer release()

	if err := s.client.Delete(ctx, listing.Category, listing.ID, sess.Credential); err != nil {
		return err
	}
	s.log.Info(ctx, "listing deleted", "category", listing.Category, "id", listing.ID)
	return nil
}

// Moderate redacts the listing after confirmation and returns the redacted
// view without another read.
func (s *Service) Moderate(ctx context.Context, listing models.Listing) (models.Listing, error) {
	sess, err := s.authorize(ctx, listing, EventModerate, authz.CapModerateDelete)
	if err != nil {
		return models.Listing{}, err
	}
	if err := s.ask(ctx, ModeratePrompt); err != nil {
		return models.Listing{}, err
	}

	release, err := s.guard.Acquire(listingKey("moderate", listing.Category, listing.ID))
	if err != nil {
		return models.Listing{}, err
	}
	defer release()

	if err := s.client.ModerateDelete(ctx, listing.Category, listing.ID, sess.Credential); err != nil {
		return models.Listing{}, err
	}
	s.log.Info(ctx, "listing redacted", "category", listing.Category, "id", listing.ID, "moderator_id", sess.User.ID)
	return listing.Redact(), nil
}

func (s *Service) authorize(ctx context.Context, listing models.Listing, e Event, need authz.Capabilities) (*models.Session, error) {
	if _, err := Next(listing.State(), e); err != nil {
		return nil, err
	}

	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPermitted, client.ErrUnauthenticated)
	}
	if !authz.Resolve(sess, listing).Has(need) {
		return nil, fmt.Errorf("%w: %s", ErrNotPermitted, e)
	}
	return sess, nil
}

func (s *Service) ask(ctx context.Context, prompt string) error {
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
