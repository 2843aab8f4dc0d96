package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

const deletedBadge = "[DELETED]"

// Summary is one entry of a category listing.
func Summary(l models.Listing, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d  %s  %s\n", l.ID, Text(l.Title), Price(float64(l.Price)))
	if desc := Text(l.Description); desc != "" {
		fmt.Fprintf(&b, "    %s\n", Truncate(desc, SummaryLength))
	}
	fmt.Fprintf(&b, "    %s - %s", orDefault(l.Location, NoLocation), RelativeDate(l.CreatedAt, now))
	return b.String()
}

// Detail is the full listing page.
func Detail(l models.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Text(l.Title))
	fmt.Fprintf(&b, "Price:    %s\n", Price(float64(l.Price)))
	fmt.Fprintf(&b, "Location: %s\n", orDefault(l.Location, NoLocationShort))
	fmt.Fprintf(&b, "Posted:   %s\n", Timestamp(l.CreatedAt))
	fmt.Fprintf(&b, "\n%s\n\n", orDefault(l.Description, NoDescription))
	fmt.Fprintf(&b, "Email:    %s\n", orDefault(l.ContactEmail, NotProvided))
	if phone := Text(l.ContactPhone); phone != "" {
		fmt.Fprintf(&b, "Phone:    %s\n", phone)
	}
	if l.Edited() {
		fmt.Fprintf(&b, "Last edited: %s\n", Timestamp(*l.LastEditedAt))
	}
	return strings.TrimRight(b.String(), "\n")
}

// UserPosts renders one user of the admin view. Redacted posts carry a
// badge.
func UserPosts(u models.UserPosts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <%s>  role: %s  joined: %s  posts: %d\n",
		Text(u.Name), u.Email, u.Role, Timestamp(u.CreatedAt), len(u.Posts))
	for _, p := range u.Posts {
		badge := ""
		if p.LooksRedacted() {
			badge = " " + deletedBadge
		}
		fmt.Fprintf(&b, "    %-14s #%-5d %s  %s%s\n",
			AdminCategoryName(p.Category), p.ID, Text(p.Title), Price(float64(p.Price)), badge)
	}
	return strings.TrimRight(b.String(), "\n")
}
