package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barwy-shop/internal/domain"
)

func TestCategoryRepository_CreateAndFind(t *testing.T) {
	resetCatalog(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	exists, err := repo.Any(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	category := &domain.Category{Name: "Пейзажі"}
	require.NoError(t, repo.Create(ctx, category))
	assert.Equal(t, "ПЕЙЗАЖІ", category.NormalizedName)

	byName, err := repo.FindByName(ctx, " пейзажі ")
	require.NoError(t, err)
	assert.Equal(t, category.ID, byName.ID)

	byID, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Пейзажі", byID.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	exists, err = repo.Any(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCategoryRepository_CreateTrimsName(t *testing.T) {
	resetCatalog(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	category := &domain.Category{Name: "  Пейзажі \t"}
	require.NoError(t, repo.Create(ctx, category))
	assert.Equal(t, "Пейзажі", category.Name)

	stored, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Пейзажі", stored.Name)
	assert.Equal(t, strings.ToUpper(stored.Name), stored.NormalizedName)
}

func TestCategoryRepository_DuplicateNameIgnoresCase(t *testing.T) {
	resetCatalog(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Category{Name: "Uncategorized"}))

	err := repo.Create(ctx, &domain.Category{Name: "UNCATEGORIZED"})
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
	assert.True(t, IsConflict(err))
}

func TestCategoryRepository_ListOrdersByName(t *testing.T) {
	resetCatalog(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	for _, name := range []string{"Пейзажі", "Abstract", "Патріотичні"} {
		require.NoError(t, repo.Create(ctx, &domain.Category{Name: name}))
	}

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Abstract", categories[0].Name)
}
