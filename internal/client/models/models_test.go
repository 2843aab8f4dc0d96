package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Price
		wantErr bool
	}{
		{"number", `12.5`, 12.5, false},
		{"numeric string", `"40.00"`, 40, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"negative", `-1`, 0, true},
		{"garbage", `"abc"`, 0, true},
		{"NaN string", `"NaN"`, 0, true},
		{"infinite string", `"+Inf"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Listing
			err := json.Unmarshal([]byte(`{"id":1,"price":`+tt.in+`}`), &l)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Price)
		})
	}
}

func TestListing_AbsentPriceIsZero(t *testing.T) {
	var l Listing
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"t"}`), &l))
	assert.Equal(t, Price(0), l.Price)
	assert.Nil(t, l.LastEditedAt)
	assert.False(t, l.Edited())
}

func TestParsePrice(t *testing.T) {
	f, err := ParsePrice("")
	require.NoError(t, err)
	assert.Zero(t, f)

	f, err = ParsePrice(" $19.99 ")
	require.NoError(t, err)
	assert.Equal(t, 19.99, f)

	_, err = ParsePrice("-3")
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = ParsePrice("cheap")
	assert.Error(t, err)

	for _, in := range []string{"NaN", "Inf", "+inf", "-Infinity"} {
		_, err = ParsePrice(in)
		assert.ErrorIs(t, err, ErrNotFinite, in)
	}
}

func TestListing_State(t *testing.T) {
	tests := []struct {
		name string
		l    Listing
		want State
	}{
		{"plain", Listing{Title: "Bike"}, StateActive},
		{"marker", Listing{Title: "Bike", DeletedByModeration: true}, StateRedacted},
		{"placeholder title without marker", Listing{Title: RedactedTitle}, StateActive},
		{"placeholder description without marker", Listing{Title: "x", Description: RedactedDescription}, StateActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.l.State())
		})
	}
}

func TestListing_LooksRedacted(t *testing.T) {
	assert.True(t, Listing{Title: RedactedTitle}.LooksRedacted())
	assert.True(t, Listing{Description: RedactedDescription}.LooksRedacted())
	assert.True(t, Listing{Title: "Bike", DeletedByModeration: true}.LooksRedacted())
	assert.False(t, Listing{Title: "Bike"}.LooksRedacted())
}

func TestListing_Redact(t *testing.T) {
	edited := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := Listing{
		ID: 7, Category: "books", Title: "Go book", Description: "like new",
		Price: 20, Location: "Riga", ContactEmail: "a@b.c", ContactPhone: "123",
		OwnerUserID: 4, LastEditedAt: &edited,
	}

	r := l.Redact()

	assert.Equal(t, StateRedacted, r.State())
	assert.Equal(t, RedactedTitle, r.Title)
	assert.Equal(t, RedactedDescription, r.Description)
	assert.Zero(t, r.Price)
	assert.Empty(t, r.Location)
	assert.Empty(t, r.ContactEmail)
	assert.Empty(t, r.ContactPhone)
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, int64(4), r.OwnerUserID)
	assert.Equal(t, "books", r.Category)

	// original untouched
	assert.Equal(t, "Go book", l.Title)
}

func TestCategory_UnmarshalJSON(t *testing.T) {
	var cs []Category
	in := `[{"name":"cars & trucks","table_name":"cars_trucks","listing_count":"3"},
	        {"name":"books","table_name":"books","listing_count":12},
	        {"name":"free stuff","table_name":"free_stuff","listing_count":null}]`
	require.NoError(t, json.Unmarshal([]byte(in), &cs))

	assert.Equal(t, []Category{
		{Key: "cars_trucks", DisplayName: "cars & trucks", ListingCount: 3},
		{Key: "books", DisplayName: "books", ListingCount: 12},
		{Key: "free_stuff", DisplayName: "free stuff"},
	}, cs)
}

func TestFallbackCategories(t *testing.T) {
	cs := FallbackCategories()
	require.Len(t, cs, 5)
	for _, c := range cs {
		assert.Zero(t, c.ListingCount, c.Key)
	}
	assert.Equal(t, "cars & trucks", cs[2].DisplayName)
}

func TestUserPosts_Decode(t *testing.T) {
	in := `{"id":2,"name":"Ann","email":"ann@x.io","user_role":"moderator","created_at":"2024-01-02T03:04:05Z",
	        "posts":[{"id":9,"category":"books","title":"[DELETED]","price":null}]}`
	var u UserPosts
	require.NoError(t, json.Unmarshal([]byte(in), &u))

	assert.Equal(t, User{ID: 2, Name: "Ann", Email: "ann@x.io", Role: RoleModerator}, u.User())
	require.Len(t, u.Posts, 1)
	assert.False(t, u.Posts[0].IsRedacted())
	assert.True(t, u.Posts[0].LooksRedacted())
	assert.Equal(t, "books", u.Posts[0].Category)
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleModerator.IsStaff())
	assert.False(t, RoleUser.IsStaff())
	assert.False(t, Role("").IsStaff())
}
