package models

import "encoding/json"

// Category is a listing bucket. Key is the opaque identifier used in paths.
type Category struct {
	Key          string `json:"table_name"`
	DisplayName  string `json:"name"`
	ListingCount int    `json:"listing_count"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var raw struct {
		Key          string          `json:"table_name"`
		DisplayName  string          `json:"name"`
		ListingCount json.RawMessage `json:"listing_count"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	n, err := decodeNumber(raw.ListingCount)
	if err != nil {
		return err
	}
	c.Key, c.DisplayName, c.ListingCount = raw.Key, raw.DisplayName, int(n)
	return nil
}

// FallbackCategories is the static set shown when the categories read fails.
// Counts are always zero.
func FallbackCategories() []Category {
	return []Category{
		{Key: "electronics", DisplayName: "electronics"},
		{Key: "furniture", DisplayName: "furniture"},
		{Key: "cars_trucks", DisplayName: "cars & trucks"},
		{Key: "books", DisplayName: "books"},
		{Key: "free_stuff", DisplayName: "free stuff"},
	}
}
