package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	byID map[string]*model.Category
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*model.Category{}}
}

func (m *memRepo) Create(_ context.Context, c *model.Category) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.byID {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, int, error) {
	out := []model.Category{}
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, c *model.Category) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func TestCreateCategory(t *testing.T) {
	uc := NewCategoryUseCase(newMemRepo(), logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "  Cheese "})
	require.NoError(t, err)
	assert.Equal(t, "Cheese", cat.Name)
	assert.NotEmpty(t, cat.ID)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "cheese"})
	assert.ErrorIs(t, err, category.ErrDuplicateName)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: " "})
	assert.ErrorIs(t, err, category.ErrNameRequired)
}

func TestUpdateCategory(t *testing.T) {
	uc := NewCategoryUseCase(newMemRepo(), logger.NewNop())
	ctx := context.Background()

	cheese, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Cheese"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Butter"})
	require.NoError(t, err)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cheese.ID, Name: "Butter"})
	assert.ErrorIs(t, err, category.ErrDuplicateName)

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cheese.ID, Name: "CHEESE", SortOrder: 4})
	require.NoError(t, err)
	assert.Equal(t, "CHEESE", updated.Name)
	assert.Equal(t, 4, updated.SortOrder)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "missing", Name: "X"})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestSeedDefaults(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, uc.SeedDefaults(ctx))
	assert.Len(t, repo.byID, len(model.DefaultCategories))

	require.NoError(t, uc.SeedDefaults(ctx))
	assert.Len(t, repo.byID, len(model.DefaultCategories))

	known, err := uc.IsKnown(ctx, "frozen SNACKS")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = uc.IsKnown(ctx, "Electronics")
	require.NoError(t, err)
	assert.False(t, known)
}
