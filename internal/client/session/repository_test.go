package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataRepository_Upsert(t *testing.T) {
	_, db := setupStore(t)
	r := newMetadataRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestMetadataRepository_DeleteIsIdempotent(t *testing.T) {
	_, db := setupStore(t)
	r := newMetadataRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x", "y"))
}

func TestMetadataRepository_ErrorsWrapped(t *testing.T) {
	_, db := setupStore(t)
	r := newMetadataRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
}
