package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/role"
	"github.com/fekuna/omnipos-storefront-service/internal/role/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoleHandler struct {
	uc     role.UseCase
	logger logger.ZapLogger
}

func NewRoleHandler(uc role.UseCase, log logger.ZapLogger) *RoleHandler {
	return &RoleHandler{
		uc:     uc,
		logger: log,
	}
}

type listResponse struct {
	Roles    []model.UserRole `json:"roles"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ListRoles lists assignments, optionally filtered by user id fragment and role.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if size < 1 || size > 200 {
		size = 50
	}

	roles, total, err := h.uc.ListRoles(c.Request.Context(), &dto.RoleFilters{
		UserID:   c.Query("user_id"),
		Role:     c.Query("role"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(listResponse{Roles: roles, Total: total, Page: page, PageSize: size}))
}

func (h *RoleHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	ur, err := h.uc.AssignRole(c.Request.Context(), auth.GetUserID(c.Request.Context()), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(ur))
}

func (h *RoleHandler) RemoveRole(c *gin.Context) {
	if err := h.uc.RemoveRole(c.Request.Context(), auth.GetUserID(c.Request.Context()), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.uc.ListAuditLogs(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"logs": logs}))
}

// MyRoles returns the caller's roles, always including the implicit user role.
func (h *RoleHandler) MyRoles(c *gin.Context) {
	roles, err := h.uc.RolesForUser(c.Request.Context(), auth.GetUserID(c.Request.Context()))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"roles": append([]model.Role{model.RoleUser}, roles...)}))
}

func (h *RoleHandler) fail(c *gin.Context, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response.Error(role.ErrInvalidRole.Error(), verr.Fields))
	case errors.Is(err, role.ErrRoleAlreadyAssigned):
		c.JSON(http.StatusConflict, response.Error(err.Error(), []response.ValidationError{
			{Field: "role", Message: err.Error(), Code: "duplicate"},
		}))
	case errors.Is(err, role.ErrRoleNotFound):
		c.JSON(http.StatusNotFound, response.Error(err.Error(), nil))
	default:
		h.logger.Error("role request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error", nil))
	}
}
