package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, total, err := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{})
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]categoryResponse, len(cats))
	for i := range cats {
		out[i] = mapModelToResponse(&cats[i])
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"categories": out, "total": total}))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(mapModelToResponse(cat)))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:        c.Param("id"),
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(mapModelToResponse(cat)))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, category.ErrNameRequired):
		c.JSON(http.StatusBadRequest, response.Error(err.Error(), []response.ValidationError{
			{Field: "name", Message: err.Error(), Code: "required"},
		}))
	case errors.Is(err, category.ErrDuplicateName):
		c.JSON(http.StatusConflict, response.Error(err.Error(), []response.ValidationError{
			{Field: "name", Message: err.Error(), Code: "duplicate"},
		}))
	case errors.Is(err, category.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, response.Error(err.Error(), nil))
	default:
		h.logger.Error("category request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error", nil))
	}
}

func mapModelToResponse(m *model.Category) categoryResponse {
	return categoryResponse{
		ID:        m.ID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
	}
}
