// Package listings stores classified ads per category and enforces who may
// change them.
package listings

import "time"

const (
	RedactedTitle       = "[DELETED]"
	RedactedDescription = "This post was deleted by moderation"
)

type Category struct {
	Key         string
	DisplayName string
}

// DefaultCategories seeds a fresh backend.
func DefaultCategories() []Category {
	return []Category{
		{Key: "electronics", DisplayName: "electronics"},
		{Key: "furniture", DisplayName: "furniture"},
		{Key: "cars_trucks", DisplayName: "cars & trucks"},
		{Key: "books", DisplayName: "books"},
		{Key: "free_stuff", DisplayName: "free stuff"},
	}
}

type Listing struct {
	ID                  int64
	Category            string
	Title               string
	Description         string
	Price               float64
	Location            string
	ContactEmail        string
	ContactPhone        string
	UserID              int64
	CreatedAt           time.Time
	LastEditedAt        *time.Time
	DeletedByModeration bool
}

// Fields is the user-editable part of a listing.
type Fields struct {
	Title        string
	Description  string
	Price        float64
	Location     string
	ContactEmail string
	ContactPhone string
}

func (l *Listing) apply(f Fields) {
	l.Title = f.Title
	l.Description = f.Description
	l.Price = f.Price
	l.Location = f.Location
	l.ContactEmail = f.ContactEmail
	l.ContactPhone = f.ContactPhone
}

func (l *Listing) redact() {
	l.Title = RedactedTitle
	l.Description = RedactedDescription
	l.Price = 0
	l.Location = ""
	l.ContactEmail = ""
	l.ContactPhone = ""
	l.DeletedByModeration = true
}
