package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/offer"
	"github.com/fekuna/omnipos-storefront-service/internal/offer/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/fekuna/omnipos-storefront-service/pkg/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OfferHandler struct {
	uc     offer.UseCase
	logger logger.ZapLogger
}

func NewOfferHandler(uc offer.UseCase, log logger.ZapLogger) *OfferHandler {
	return &OfferHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OfferHandler) ListLiveOffers(c *gin.Context) {
	offers, err := h.uc.ListLiveOffers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offers))
}

func (h *OfferHandler) ListOffers(c *gin.Context) {
	offers, err := h.uc.ListOffers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(offers))
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	o, err := h.uc.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(o))
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req dto.OfferInput
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.uc.CreateOffer(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(o))
}

func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	var req dto.OfferInput
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.uc.UpdateOffer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(o))
}

func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	if err := h.uc.DeleteOffer(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfferHandler) fail(c *gin.Context, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response.Error("Invalid offer", verr.Fields))
	case errors.Is(err, offer.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, response.Error("Offer not found", nil))
	default:
		h.logger.Error("offer request failed", zap.Error(err))
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
