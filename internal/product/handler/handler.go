package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	MRP         *int64   `json:"mrp"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Images      []string `json:"images"`
	IsTrending  bool     `json:"is_trending"`
	IsActive    *bool    `json:"is_active"`
}

type listResponse struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ListCatalog serves the storefront listing: active products with their current price.
func (h *ProductHandler) ListCatalog(c *gin.Context) {
	filters := parseFilters(c)
	active := true
	filters.IsActive = &active

	items, total, err := h.uc.ListCatalog(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(listResponse{
		Items:    items,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}))
}

func (h *ProductHandler) GetCatalogItem(c *gin.Context) {
	item, err := h.uc.GetCatalogItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !item.Product.IsActive {
		h.fail(c, product.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, response.Success(item))
}

// ListProducts is the admin listing; inactive products are included unless filtered.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := parseFilters(c)
	if v, ok := c.GetQuery("active"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.IsActive = &b
		}
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(listResponse{
		Items:    products,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		MRP:         req.MRP,
		Unit:        req.Unit,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Images:      req.Images,
		IsTrending:  req.IsTrending,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(p))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		MRP:         req.MRP,
		Unit:        req.Unit,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Images:      req.Images,
		IsTrending:  req.IsTrending,
		IsActive:    active,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(p))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) fail(c *gin.Context, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response.Error("Invalid product", verr.Fields))
	case errors.Is(err, product.ErrProductNotFound):
		c.JSON(http.StatusNotFound, response.Error("Product not found", nil))
	default:
		h.logger.Error("product request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error", nil))
	}
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return false
	}
	return true
}

func parseFilters(c *gin.Context) *dto.ProductFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	trending, _ := strconv.ParseBool(c.Query("trending"))

	return &dto.ProductFilters{
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		Trending:    trending,
		SearchQuery: c.Query("search"),
		SortBy:      c.Query("sort"),
		SortOrder:   c.Query("order"),
		Page:        page,
		PageSize:    size,
	}
}
