package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, category.ErrNameRequired
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, category.ErrDuplicateName
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      name,
		SortOrder: input.SortOrder,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrCategoryNotFound
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, category.ErrNameRequired
	}

	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrCategoryNotFound
	}

	if !strings.EqualFold(cat.Name, name) {
		clash, err := uc.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, category.ErrDuplicateName
		}
	}

	cat.Name = name
	cat.SortOrder = input.SortOrder
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *categoryUseCase) IsKnown(ctx context.Context, name string) (bool, error) {
	cat, err := uc.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	return cat != nil, nil
}

func (uc *categoryUseCase) SeedDefaults(ctx context.Context) error {
	_, count, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{PageSize: 1, Page: 1})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, name := range model.DefaultCategories {
		if _, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: name, SortOrder: i}); err != nil {
			return err
		}
	}
	uc.logger.Info("Seeded default categories", zap.Int("count", len(model.DefaultCategories)))
	return nil
}
