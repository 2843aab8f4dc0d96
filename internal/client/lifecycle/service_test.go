package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	// gate, when set, blocks mutations until closed.
	gate chan struct{}

	createID  int64
	mutateErr error
	stored    models.Listing
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Create(_ context.Context, category string, _ models.Draft, credential string) (int64, error) {
	f.record("create:" + category + ":" + credential)
	return f.createID, f.mutateErr
}

func (f *fakeClient) Update(_ context.Context, category string, _ int64, patch models.Patch, _ string) error {
	f.record("update:" + category)
	if f.mutateErr == nil {
		now := time.Now()
		f.stored.Title = patch.Title
		f.stored.LastEditedAt = &now
	}
	return f.mutateErr
}

func (f *fakeClient) GetByID(_ context.Context, category string, _ int64) (models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get:"+category)
	return f.stored, nil
}

func (f *fakeClient) Delete(_ context.Context, category string, _ int64, _ string) error {
	f.record("delete:" + category)
	return f.mutateErr
}

func (f *fakeClient) ModerateDelete(_ context.Context, category string, _ int64, _ string) error {
	f.record("moderate:" + category)
	return f.mutateErr
}

func storeWith(t *testing.T, id int64, role models.Role) session.Store {
	t.Helper()
	st := session.NewMemoryStore()
	if id != 0 {
		require.NoError(t, st.Save(context.Background(), models.Session{
			User:       models.User{ID: id, Name: "u", Role: role},
			Credential: "tok",
		}))
	}
	return st
}

func answer(ok bool, prompts *[]string) Confirmer {
	return ConfirmFunc(func(_ context.Context, p string) (bool, error) {
		*prompts = append(*prompts, p)
		return ok, nil
	})
}

var listing = models.Listing{ID: 3, Category: "books", OwnerUserID: 7, Title: "Dune"}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous makes no call", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewService(fc, storeWith(t, 0, ""), nil)

		_, err := svc.Create(ctx, "books", models.Draft{Title: "x"})
		require.ErrorIs(t, err, client.ErrUnauthenticated)
		assert.Empty(t, fc.Calls())
	})

	t.Run("uses stored credential", func(t *testing.T) {
		fc := &fakeClient{createID: 42}
		svc := NewService(fc, storeWith(t, 7, models.RoleUser), nil)

		id, err := svc.Create(ctx, "books", models.Draft{Title: "x"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, []string{"create:books:tok"}, fc.Calls())
	})
}

func TestEditReturnsServerTruth(t *testing.T) {
	fc := &fakeClient{stored: listing}
	svc := NewService(fc, storeWith(t, 7, models.RoleUser), nil)

	got, err := svc.Edit(context.Background(), listing, models.Patch{Title: "Dune II"})
	require.NoError(t, err)
	assert.Equal(t, "Dune II", got.Title)
	assert.True(t, got.Edited())
	assert.Equal(t, []string{"update:books", "get:books"}, fc.Calls())
}

func TestPermissionChecksMakeNoCall(t *testing.T) {
	ctx := context.Background()
	redacted := listing.Redact()

	tests := []struct {
		name    string
		userID  int64
		role    models.Role
		run     func(*Service) error
		wantErr error
	}{
		{
			name: "stranger edits", userID: 8, role: models.RoleUser,
			run:     func(s *Service) error { _, err := s.Edit(ctx, listing, models.Patch{Title: "x"}); return err },
			wantErr: ErrNotPermitted,
		},
		{
			name: "anonymous deletes", userID: 0,
			run:     func(s *Service) error { return s.Delete(ctx, listing) },
			wantErr: client.ErrUnauthenticated,
		},
		{
			name: "moderator deletes foreign", userID: 8, role: models.RoleModerator,
			run:     func(s *Service) error { return s.Delete(ctx, listing) },
			wantErr: ErrNotPermitted,
		},
		{
			name: "owner moderates", userID: 7, role: models.RoleUser,
			run:     func(s *Service) error { _, err := s.Moderate(ctx, listing); return err },
			wantErr: ErrNotPermitted,
		},
		{
			name: "owner edits redacted", userID: 7, role: models.RoleUser,
			run:     func(s *Service) error { _, err := s.Edit(ctx, redacted, models.Patch{Title: "x"}); return err },
			wantErr: ErrTerminalState,
		},
		{
			name: "moderator re-moderates", userID: 8, role: models.RoleAdmin,
			run:     func(s *Service) error { _, err := s.Moderate(ctx, redacted); return err },
			wantErr: ErrTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			var prompts []string
			svc := NewService(fc, storeWith(t, tt.userID, tt.role), answer(true, &prompts))

			require.ErrorIs(t, tt.run(svc), tt.wantErr)
			assert.Empty(t, fc.Calls())
			assert.Empty(t, prompts)
		})
	}
}

func TestDeclinedConfirmation(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	var prompts []string

	owner := NewService(fc, storeWith(t, 7, models.RoleUser), answer(false, &prompts))
	require.ErrorIs(t, owner.Delete(ctx, listing), ErrCancelled)

	mod := NewService(fc, storeWith(t, 8, models.RoleModerator), answer(false, &prompts))
	_, err := mod.Moderate(ctx, listing)
	require.ErrorIs(t, err, ErrCancelled)

	assert.Empty(t, fc.Calls())
	assert.Equal(t, []string{DeletePrompt, ModeratePrompt}, prompts)
	assert.Contains(t, DeletePrompt, "cannot be undone")
	assert.Contains(t, ModeratePrompt, "replaced")
}

func TestModerateReturnsRedactedView(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc, storeWith(t, 8, models.RoleModerator), AlwaysConfirm)

	got, err := svc.Moderate(context.Background(), listing)
	require.NoError(t, err)
	assert.True(t, got.DeletedByModeration)
	assert.Equal(t, models.RedactedTitle, got.Title)
	assert.Equal(t, models.RedactedDescription, got.Description)
	assert.Equal(t, listing.ID, got.ID)
	assert.Equal(t, []string{"moderate:books"}, fc.Calls())
}

func TestPlaceholderTitleIsOrdinaryContent(t *testing.T) {
	ctx := context.Background()
	l := models.Listing{ID: 5, Category: "books", OwnerUserID: 7, Title: models.RedactedTitle}

	fc := &fakeClient{}
	owner := NewService(fc, storeWith(t, 7, models.RoleUser), AlwaysConfirm)
	require.NoError(t, owner.Delete(ctx, l))

	mod := NewService(fc, storeWith(t, 8, models.RoleModerator), AlwaysConfirm)
	got, err := mod.Moderate(ctx, l)
	require.NoError(t, err)
	assert.True(t, got.DeletedByModeration)

	assert.Equal(t, []string{"delete:books", "moderate:books"}, fc.Calls())
}

func TestInFlightGuard(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{gate: make(chan struct{})}
	svc := NewService(fc, storeWith(t, 7, models.RoleUser), AlwaysConfirm)

	done := make(chan error, 1)
	go func() { done <- svc.Delete(ctx, listing) }()

	require.Eventually(t, func() bool {
		return svc.guard.Busy(listingKey("delete", "books", 3))
	}, time.Second, time.Millisecond)

	err := svc.Delete(ctx, listing)
	require.ErrorIs(t, err, ErrInFlight)

	close(fc.gate)
	require.NoError(t, <-done)
	assert.False(t, svc.guard.Busy(listingKey("delete", "books", 3)))
	assert.Equal(t, []string{"delete:books"}, fc.Calls())
}

func TestGuardReleasedOnFailure(t *testing.T) {
	fc := &fakeClient{mutateErr: errors.New("boom")}
	svc := NewService(fc, storeWith(t, 7, models.RoleUser), AlwaysConfirm)

	require.Error(t, svc.Delete(context.Background(), listing))
	require.Error(t, svc.Delete(context.Background(), listing))
	assert.Len(t, fc.Calls(), 2)
}
