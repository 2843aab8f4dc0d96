package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/transport"
	"github.com/dmitrijs2005/tradeboard/internal/server/servertest"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSender records how many requests reach the wire.
type countingSender struct {
	next  Sender
	sends atomic.Int32
}

func (s *countingSender) Send(ctx context.Context, req *http.Request, check transport.CheckFunc) (*http.Response, error) {
	s.sends.Add(1)
	return s.next.Send(ctx, req, check)
}

func (s *countingSender) SendOnce(ctx context.Context, req *http.Request, check transport.CheckFunc) (*http.Response, error) {
	s.sends.Add(1)
	return s.next.SendOnce(ctx, req, check)
}

func fastTransport() *transport.Transport {
	return transport.New(transport.Config{
		MaxAttempts:    5,
		BaseDelay:      time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		RequestTimeout: 2 * time.Second,
	})
}

func newTestClient(t *testing.T) (*RESTClient, *servertest.Server, *countingSender) {
	t.Helper()
	srv := servertest.New(t)
	sender := &countingSender{next: fastTransport()}
	return NewRESTClient(srv.BaseURL(), sender), srv, sender
}

func login(t *testing.T, c *RESTClient, srv *servertest.Server, email, role string) models.Session {
	t.Helper()
	srv.Register(t, email, "secret1", "User "+email, role)
	s, err := c.Login(context.Background(), email, "secret1")
	require.NoError(t, err)
	return s
}

func TestCreateLocalChecks(t *testing.T) {
	c, _, sender := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		category   string
		draft      models.Draft
		credential string
		wantErr    error
		wantField  string
	}{
		{"empty category", "", models.Draft{Title: "x"}, "tok", ErrValidation, "category"},
		{"blank category", "   ", models.Draft{Title: "x"}, "tok", ErrValidation, "category"},
		{"missing title", "books", models.Draft{Price: 3}, "tok", ErrValidation, "title"},
		{"negative price", "books", models.Draft{Title: "x", Price: -1}, "tok", ErrValidation, "price"},
		{"infinite price", "books", models.Draft{Title: "x", Price: math.Inf(1)}, "tok", ErrValidation, "price"},
		{"NaN price", "books", models.Draft{Title: "x", Price: math.NaN()}, "tok", ErrValidation, "price"},
		{"bad email", "books", models.Draft{Title: "x", ContactEmail: "nope"}, "tok", ErrValidation, "contact_email"},
		{"no credential", "books", models.Draft{Title: "x"}, "", ErrUnauthenticated, ""},
		// the draft is checked before the credential
		{"invalid draft without credential", "books", models.Draft{Price: 3}, "", ErrValidation, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Create(ctx, tt.category, tt.draft, tt.credential)
			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantField != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
	assert.Zero(t, sender.sends.Load(), "no request may be sent when local checks fail")
}

func TestMutationsRequireCredential(t *testing.T) {
	c, _, sender := newTestClient(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.Update(ctx, "books", 1, models.Patch{Title: "x"}, ""), ErrUnauthenticated)
	assert.ErrorIs(t, c.Delete(ctx, "books", 1, ""), ErrUnauthenticated)
	assert.ErrorIs(t, c.ModerateDelete(ctx, "books", 1, ""), ErrUnauthenticated)
	_, err := c.AdminUsers(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, sender.sends.Load())
}

func TestDeleteRequiresCategory(t *testing.T) {
	c, _, sender := newTestClient(t)
	ctx := context.Background()

	for _, category := range []string{"", "  "} {
		var verr *ValidationError

		err := c.Delete(ctx, category, 3, "tok")
		require.ErrorIs(t, err, ErrValidation)
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "category", verr.Field)

		err = c.ModerateDelete(ctx, category, 3, "tok")
		require.ErrorIs(t, err, ErrValidation)
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "category", verr.Field)
	}
	assert.Zero(t, sender.sends.Load(), "a blank category must not reach the wire")
}

func TestListingRoundTrip(t *testing.T) {
	c, srv, _ := newTestClient(t)
	ctx := context.Background()
	owner := login(t, c, srv, "owner@example.com", users.RoleUser)

	id, err := c.Create(ctx, "electronics", models.Draft{
		Title:        "Radio",
		Description:  "Works",
		Price:        25,
		Location:     "Riga",
		ContactEmail: "owner@example.com",
	}, owner.Credential)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := c.GetByID(ctx, "electronics", id)
	require.NoError(t, err)
	assert.Equal(t, "Radio", got.Title)
	assert.Equal(t, models.Price(25), got.Price)
	assert.Equal(t, "electronics", got.Category)
	assert.Equal(t, owner.User.ID, got.OwnerUserID)
	assert.Equal(t, models.StateActive, got.State())
	assert.False(t, got.Edited())

	list, err := c.ListByCategory(ctx, "electronics")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, cat := range cats {
		counts[cat.Key] = cat.ListingCount
	}
	assert.Equal(t, 1, counts["electronics"])
}

func TestUpdateAdvancesLastEdited(t *testing.T) {
	c, srv, _ := newTestClient(t)
	ctx := context.Background()
	owner := login(t, c, srv, "owner@example.com", users.RoleUser)

	id, err := c.Create(ctx, "books", models.Draft{Title: "Dune"}, owner.Credential)
	require.NoError(t, err)

	require.NoError(t, c.Update(ctx, "books", id, models.Patch{Title: "Dune, 1st ed."}, owner.Credential))
	first, err := c.GetByID(ctx, "books", id)
	require.NoError(t, err)
	require.NotNil(t, first.LastEditedAt)

	require.NoError(t, c.Update(ctx, "books", id, models.Patch{Title: "Dune, signed"}, owner.Credential))
	second, err := c.GetByID(ctx, "books", id)
	require.NoError(t, err)
	require.NotNil(t, second.LastEditedAt)

	assert.True(t, second.LastEditedAt.After(*first.LastEditedAt))
	assert.False(t, first.LastEditedAt.Before(first.CreatedAt))
	assert.Equal(t, "Dune, signed", second.Title)
}

func TestUpdateByOtherUserIsRejected(t *testing.T) {
	c, srv, _ := newTestClient(t)
	ctx := context.Background()
	owner := login(t, c, srv, "owner@example.com", users.RoleUser)
	other := login(t, c, srv, "other@example.com", users.RoleUser)

	id, err := c.Create(ctx, "books", models.Draft{Title: "Dune"}, owner.Credential)
	require.NoError(t, err)

	err = c.Update(ctx, "books", id, models.Patch{Title: "Mine"}, other.Credential)
	require.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var rej *RequestRejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusForbidden, rej.StatusCode)
	assert.NotEmpty(t, rej.Message)
}

func TestModerateThenGetIsRedacted(t *testing.T) {
	c, srv, _ := newTestClient(t)
	ctx := context.Background()
	owner := login(t, c, srv, "owner@example.com", users.RoleUser)
	mod := login(t, c, srv, "mod@example.com", users.RoleModerator)

	id, err := c.Create(ctx, "furniture", models.Draft{Title: "Sofa", Description: "Green"}, owner.Credential)
	require.NoError(t, err)

	err = c.ModerateDelete(ctx, "furniture", id, owner.Credential)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, c.ModerateDelete(ctx, "furniture", id, mod.Credential))
	require.NoError(t, c.ModerateDelete(ctx, "furniture", id, mod.Credential), "moderation is idempotent")

	got, err := c.GetByID(ctx, "furniture", id)
	require.NoError(t, err)
	assert.True(t, got.IsRedacted())
	assert.Equal(t, models.StateRedacted, got.State())

	err = c.Update(ctx, "furniture", id, models.Patch{Title: "Back"}, owner.Credential)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	c, srv, sender := newTestClient(t)
	ctx := context.Background()
	owner := login(t, c, srv, "owner@example.com", users.RoleUser)

	id, err := c.Create(ctx, "books", models.Draft{Title: "Dune"}, owner.Credential)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "books", id, owner.Credential))

	before := sender.sends.Load()
	_, err = c.GetByID(ctx, "books", id)
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, before+1, sender.sends.Load())

	err = c.Delete(ctx, "books", id, owner.Credential)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownCategoryIsNotFound(t *testing.T) {
	c, _, _ := newTestClient(t)

	_, err := c.ListByCategory(context.Background(), "boats")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSignupAndLogin(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, "new@example.com", "secret1", "New"))

	err := c.Signup(ctx, "new@example.com", "secret1", "Again")
	var rej *RequestRejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusConflict, rej.StatusCode)

	_, err = c.Login(ctx, "new@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	s, err := c.Login(ctx, "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "New", s.User.Name)
	assert.Equal(t, models.RoleUser, s.User.Role)
	assert.NotEmpty(t, s.Credential)
}

func TestAdminUsers(t *testing.T) {
	c, srv, sender := newTestClient(t)
	ctx := context.Background()
	user := login(t, c, srv, "u@example.com", users.RoleUser)
	admin := login(t, c, srv, "admin@example.com", users.RoleAdmin)

	_, err := c.Create(ctx, "books", models.Draft{Title: "Dune"}, user.Credential)
	require.NoError(t, err)

	before := sender.sends.Load()
	_, err = c.AdminUsers(ctx, user.Credential)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, before+1, sender.sends.Load(), "a 403 is not retried")

	all, err := c.AdminUsers(ctx, admin.Credential)
	require.NoError(t, err)
	require.Len(t, all, 2)

	for _, up := range all {
		if up.Email == "u@example.com" {
			require.Len(t, up.Posts, 1)
			assert.Equal(t, "Dune", up.Posts[0].Title)
			assert.Equal(t, models.RoleUser, up.User().Role)
		}
	}
}

func TestUnavailableBackend(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewRESTClient(srv.URL+"/api", fastTransport())
	ctx := context.Background()

	_, err := c.Categories(ctx)
	require.ErrorIs(t, err, ErrUnavailable)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 5, terr.Attempts)
	assert.Equal(t, int32(5), hits.Load())

	hits.Store(0)
	err = c.Delete(ctx, "books", 1, "tok")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), hits.Load(), "mutations are sent once")

	hits.Store(0)
	assert.Error(t, c.Ping(ctx))
	assert.Equal(t, int32(1), hits.Load())
}

func TestPing(t *testing.T) {
	c, _, _ := newTestClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}
