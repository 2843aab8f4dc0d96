package listings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"sync"
	"time"
)

var (
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
	ErrRedacted   = errors.New("this post was removed by moderation")
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID int64
	Staff  bool
}

type CategoryCount struct {
	Category
	Count int
}

type Service struct {
	repo Repository
	now  func() time.Time

	// editMu serialises edits so last_edited_at is strictly increasing.
	editMu   sync.Mutex
	lastEdit time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

func (s *Service) Categories(ctx context.Context) ([]CategoryCount, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		n, err := s.repo.Count(ctx, c.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, category string) ([]*Listing, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, category string, id int64) (*Listing, error) {
	return s.repo.Get(ctx, category, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Listing, error) {
	return s.repo.ListByUser(ctx, userID)
}

func validate(f Fields) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if math.IsNaN(f.Price) || math.IsInf(f.Price, 0) {
		return fmt.Errorf("%w: price must be a finite number", ErrValidation)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if f.ContactEmail != "" {
		if _, err := mail.ParseAddress(f.ContactEmail); err != nil {
			return fmt.Errorf("%w: contact email is invalid", ErrValidation)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor Actor, category string, f Fields) (*Listing, error) {
	ok, err := s.repo.HasCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownCategory
	}
	if err := validate(f); err != nil {
		return nil, err
	}

	l := &Listing{Category: category, UserID: actor.UserID, CreatedAt: s.now().UTC()}
	l.apply(f)
	return s.repo.Create(ctx, l)
}

// Update replaces the listing's fields. Only the owner may edit, and a
// redacted listing cannot be edited at all.
func (s *Service) Update(ctx context.Context, actor Actor, category string, id int64, f Fields) (*Listing, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	l, err := s.repo.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if l.DeletedByModeration {
		return nil, ErrRedacted
	}

	l.apply(f)
	edited := s.nextEditTime(l)
	l.LastEditedAt = &edited

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// nextEditTime is never earlier than the clock and always later than both
// the previous edit of any listing and l's own timestamps.
func (s *Service) nextEditTime(l *Listing) time.Time {
	t := s.now().UTC()
	floor := s.lastEdit
	if l.LastEditedAt != nil && l.LastEditedAt.After(floor) {
		floor = *l.LastEditedAt
	}
	if l.CreatedAt.After(floor) {
		floor = l.CreatedAt
	}
	if !t.After(floor) {
		t = floor.Add(time.Microsecond)
	}
	s.lastEdit = t
	return t
}

func (s *Service) Delete(ctx context.Context, actor Actor, category string, id int64) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	l, err := s.repo.Get(ctx, category, id)
	if err != nil {
		return err
	}
	if l.UserID != actor.UserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, category, id)
}

// Moderate overwrites the listing's content with the moderation
// placeholders. It is idempotent and reserved for staff.
func (s *Service) Moderate(ctx context.Context, actor Actor, category string, id int64) (*Listing, error) {
	if !actor.Staff {
		return nil, ErrForbidden
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	l, err := s.repo.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}
	l.redact()
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
