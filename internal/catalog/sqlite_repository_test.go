package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delcom/catalog/internal/catalog"
	"github.com/delcom/catalog/internal/database"
	"github.com/delcom/catalog/internal/resources"
)

// stepClock returns a clock advancing one second per call.
func stepClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func setupSQLiteRepo(t *testing.T, kind catalog.Kind) (*catalog.SQLiteRepository, *catalog.Kind) {
	t.Helper()

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, database.DialectSQLite))

	repo := catalog.NewSQLiteRepository(db, &kind)
	repo.SetNow(stepClock())
	return repo, &kind
}

func newPlant(kind *catalog.Kind, name string) *catalog.Record {
	return &catalog.Record{
		Kind: kind,
		Attrs: map[string]string{
			"nama":        name,
			"deskripsi":   "deskripsi " + name,
			"manfaat":     "manfaat",
			"efekSamping": "efek",
		},
		ImagePath: "plants/" + name + ".png",
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	rec := newPlant(kind, "Kunyit")
	require.NoError(t, repo.Create(ctx, rec))

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Kunyit", got.Name())
	assert.Equal(t, "efek", got.Attrs["efekSamping"])
	assert.Equal(t, "plants/Kunyit.png", got.ImagePath)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	byName, err := repo.GetByName(ctx, "Kunyit")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byName.ID)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo, _ := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), catalog.ErrNotFound)
}

func TestSQLiteRepository_GetByNameIsExact(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPlant(kind, "Kunyit")))

	_, err := repo.GetByName(ctx, "Kunyi")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSQLiteRepository_CreateDuplicateName(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPlant(kind, "Jahe")))
	err := repo.Create(ctx, newPlant(kind, "Jahe"))

	assert.ErrorIs(t, err, catalog.ErrDuplicateName)
}

func TestSQLiteRepository_SearchBlankReturnsNewestFirst(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant().WithPageSize(3))
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, repo.Create(ctx, newPlant(kind, fmt.Sprintf("P%d", i))))
	}

	got, err := repo.Search(ctx, "   ")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "P4", got[0].Name())
	assert.Equal(t, "P3", got[1].Name())
	assert.Equal(t, "P2", got[2].Name())
}

func TestSQLiteRepository_SearchFiltersByNameCaseInsensitive(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	for _, name := range []string{"Temulawak", "Kunyit Putih", "Jahe Merah", "kunyit hitam"} {
		require.NoError(t, repo.Create(ctx, newPlant(kind, name)))
	}

	got, err := repo.Search(ctx, "KUNYIT")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Kunyit Putih", got[0].Name())
	assert.Equal(t, "kunyit hitam", got[1].Name())
}

func TestSQLiteRepository_SearchEscapesWildcards(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPlant(kind, "Daun_Sirih")))
	require.NoError(t, repo.Create(ctx, newPlant(kind, "DaunXSirih")))
	require.NoError(t, repo.Create(ctx, newPlant(kind, "100% Lidah Buaya")))

	got, err := repo.Search(ctx, "_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Daun_Sirih", got[0].Name())

	got, err = repo.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Lidah Buaya", got[0].Name())
}

func TestSQLiteRepository_SearchEmptyTable(t *testing.T) {
	repo, _ := setupSQLiteRepo(t, resources.Zodiac())

	got, err := repo.Search(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLiteRepository_UpdateReplacesFields(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	rec := newPlant(kind, "Sereh")
	require.NoError(t, repo.Create(ctx, rec))
	created := rec.CreatedAt

	rec.Attrs["nama"] = "Serai"
	rec.Attrs["manfaat"] = "baru"
	rec.ImagePath = "plants/new.png"
	require.NoError(t, repo.Update(ctx, rec))
	assert.True(t, rec.UpdatedAt.After(created))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Serai", got.Name())
	assert.Equal(t, "baru", got.Attrs["manfaat"])
	assert.Equal(t, "plants/new.png", got.ImagePath)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestSQLiteRepository_UpdateMissingAndDuplicate(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Plant())
	ctx := context.Background()

	missing := newPlant(kind, "Ghost")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), catalog.ErrNotFound)

	a := newPlant(kind, "A")
	b := newPlant(kind, "B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.Attrs["nama"] = "A"
	assert.ErrorIs(t, repo.Update(ctx, b), catalog.ErrDuplicateName)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo, kind := setupSQLiteRepo(t, resources.Flower())
	ctx := context.Background()

	rec := &catalog.Record{
		Kind: kind,
		Attrs: map[string]string{
			"namaUmum": "Mawar", "namaLatin": "Rosa", "makna": "cinta",
			"asalBudaya": "Persia", "deskripsi": "d",
		},
		ImagePath: "flowers/m.jpg",
	}
	require.NoError(t, repo.Create(ctx, rec))

	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
