package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Placeholders written over a listing's content by a moderation delete.
const (
	RedactedTitle       = "[DELETED]"
	RedactedDescription = "This post was deleted by moderation"
)

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNotFinite     = errors.New("not a finite number")
)

// State is the lifecycle position of a listing.
type State int

const (
	StateActive State = iota
	StateRedacted
	StateHardDeleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRedacted:
		return "redacted"
	case StateHardDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Price is a non-negative amount that tolerates loosely typed wire values.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	f, err := decodeNumber(b)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if f < 0 {
		return ErrNegativePrice
	}
	*p = Price(f)
	return nil
}

// ParsePrice reads user input; blank means 0.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid price %q: %w", s, ErrNotFinite)
	}
	if f < 0 {
		return 0, ErrNegativePrice
	}
	return f, nil
}

// Listing is a single classified ad as seen by the client.
type Listing struct {
	ID                  int64      `json:"id"`
	Category            string     `json:"category,omitempty"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Price               Price      `json:"price"`
	Location            string     `json:"location"`
	ContactEmail        string     `json:"contact_email"`
	ContactPhone        string     `json:"contact_phone"`
	OwnerUserID         int64      `json:"user_id"`
	CreatedAt           time.Time  `json:"created_at"`
	LastEditedAt        *time.Time `json:"last_edited_at,omitempty"`
	DeletedByModeration bool       `json:"deleted_by_moderation"`
}

// IsRedacted reports whether the listing was removed by moderation. Only the
// explicit marker counts; a title that happens to read "[DELETED]" is
// ordinary content.
func (l Listing) IsRedacted() bool {
	return l.DeletedByModeration
}

// LooksRedacted also matches the placeholder text older backends write
// without the marker. It only drives the admin badge, never permissions.
func (l Listing) LooksRedacted() bool {
	return l.DeletedByModeration || l.Title == RedactedTitle || l.Description == RedactedDescription
}

func (l Listing) State() State {
	if l.IsRedacted() {
		return StateRedacted
	}
	return StateActive
}

// Edited reports whether the listing has been updated since creation.
func (l Listing) Edited() bool {
	return l.LastEditedAt != nil && !l.LastEditedAt.IsZero()
}

// Redact returns the moderation-deleted variant of l. Identity, ownership
// and timestamps are kept; all content is replaced or cleared.
func (l Listing) Redact() Listing {
	l.Title = RedactedTitle
	l.Description = RedactedDescription
	l.Price = 0
	l.Location = ""
	l.ContactEmail = ""
	l.ContactPhone = ""
	l.DeletedByModeration = true
	return l
}

// Draft holds the user-submitted fields of a new or edited listing.
type Draft struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"finite,gte=0"`
	Location     string  `json:"location"`
	ContactEmail string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string  `json:"contact_phone"`
}

// Patch is the full replacement sent on edit.
type Patch = Draft

// DraftFrom prefills an edit form with l's current values.
func DraftFrom(l Listing) Draft {
	return Draft{
		Title:        l.Title,
		Description:  l.Description,
		Price:        float64(l.Price),
		Location:     l.Location,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
	}
}

// UserPosts is one row of the admin view: an account and all its listings.
type UserPosts struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
	Posts     []Listing `json:"posts"`
}

func (u UserPosts) User() User {
	return User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
