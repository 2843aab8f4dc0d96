package api

import (
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/server/listings"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
)

type categoryResponse struct {
	Name         string `json:"name"`
	TableName    string `json:"table_name"`
	ListingCount int    `json:"listing_count"`
}

type listingResponse struct {
	ID                  int64      `json:"id"`
	Category            string     `json:"category"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Price               float64    `json:"price"`
	Location            string     `json:"location"`
	ContactEmail        string     `json:"contact_email"`
	ContactPhone        string     `json:"contact_phone"`
	UserID              int64      `json:"user_id"`
	CreatedAt           time.Time  `json:"created_at"`
	LastEditedAt        *time.Time `json:"last_edited_at"`
	DeletedByModeration bool       `json:"deleted_by_moderation"`
}

func toListingResponse(l *listings.Listing) listingResponse {
	return listingResponse{
		ID:                  l.ID,
		Category:            l.Category,
		Title:               l.Title,
		Description:         l.Description,
		Price:               l.Price,
		Location:            l.Location,
		ContactEmail:        l.ContactEmail,
		ContactPhone:        l.ContactPhone,
		UserID:              l.UserID,
		CreatedAt:           l.CreatedAt,
		LastEditedAt:        l.LastEditedAt,
		DeletedByModeration: l.DeletedByModeration,
	}
}

func toListingResponses(ls []*listings.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListingResponse(l))
	}
	return out
}

// listingRequest accepts price as a number or a numeric string.
type listingRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        flexPrice `json:"price"`
	Location     string    `json:"location"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
}

func (r listingRequest) fields() listings.Fields {
	return listings.Fields{
		Title:        r.Title,
		Description:  r.Description,
		Price:        float64(r.Price),
		Location:     r.Location,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
	}
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type adminUserResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	UserRole  string            `json:"user_role"`
	CreatedAt time.Time         `json:"created_at"`
	Posts     []listingResponse `json:"posts"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type moderateRequest struct {
	Category string `json:"category"`
	PostID   int64  `json:"post_id"`
}
