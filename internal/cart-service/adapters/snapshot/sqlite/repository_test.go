package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	snap := domain.Snapshot{
		Items: []domain.Line{
			{ProductID: "p1", Name: "Asado", Price: 12.5, Kg: 3, MaxKgPerOrder: 10},
			{ProductID: "p2", Name: "Achuras", Kg: 2, MaxKgPerOrder: 10, AllowBoxes: true, IsBox: true},
		},
		MaxTotalKg: 10,
		MaxItems:   2,
	}

	require.NoError(t, repo.Save(ctx, "u1", snap))

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, &snap, got)
}

func TestLoadMissingOwner(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	first := domain.Snapshot{Items: []domain.Line{{ProductID: "p1", Kg: 1, MaxKgPerOrder: 10}}, MaxTotalKg: 10, MaxItems: 2}
	second := domain.Snapshot{Items: []domain.Line{{ProductID: "p2", Kg: 5, MaxKgPerOrder: 10}}, MaxTotalKg: 20, MaxItems: 3}

	require.NoError(t, repo.Save(ctx, "u1", first))
	require.NoError(t, repo.Save(ctx, "u1", second))

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, &second, got)
}

func TestOwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	mine := domain.Snapshot{Items: []domain.Line{{ProductID: "p1", Kg: 1, MaxKgPerOrder: 10}}, MaxTotalKg: 10, MaxItems: 2}
	require.NoError(t, repo.Save(ctx, "u1", mine))

	got, err := repo.Load(ctx, "u2")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	snap := domain.Snapshot{Items: []domain.Line{{ProductID: "p1", Kg: 1, MaxKgPerOrder: 10}}, MaxTotalKg: 10, MaxItems: 2}
	require.NoError(t, repo.Save(ctx, "u1", snap))

	require.NoError(t, repo.Clear(ctx, "u1"))
	require.NoError(t, repo.Clear(ctx, "u1"))

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got)
}
