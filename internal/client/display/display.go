// Package display formats listings, categories and users as terminal text.
package display

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
)

const (
	NoLocation      = "location not specified"
	NoLocationShort = "not specified"
	NoDescription   = "no description provided"
	NotProvided     = "not provided"

	// SummaryLength is how much of a description the category view shows.
	SummaryLength = 100
)

var strict = bluemonday.StrictPolicy()

// Text strips any markup from backend-supplied text.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func Price(p float64) string {
	if p == 0 {
		return "FREE"
	}
	return fmt.Sprintf("$%.2f", p)
}

// CategoryName renders a category key for menus: cars_trucks becomes
// "cars & trucks".
func CategoryName(key string) string {
	return strings.ReplaceAll(key, "_", " & ")
}

var adminNames = map[string]string{
	"electronics": "Electronics",
	"furniture":   "Furniture",
	"cars_trucks": "Cars & Trucks",
	"books":       "Books",
	"free_stuff":  "Free Stuff",
}

// AdminCategoryName is the admin view's label for a category key.
func AdminCategoryName(key string) string {
	if key == "" {
		return "Unknown"
	}
	if name, ok := adminNames[key]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens s to n runes followed by "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// RelativeDate is the category view's age of a listing.
func RelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Local().Format("Jan 2, 2006")
}

func Timestamp(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

func orDefault(s, def string) string {
	if s = Text(s); s == "" {
		return def
	}
	return s
}
