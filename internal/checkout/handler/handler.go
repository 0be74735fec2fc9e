package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	svc      *checkout.Service
	products checkout.ProductLookup
	logger   logger.ZapLogger
}

func NewCheckoutHandler(svc *checkout.Service, products checkout.ProductLookup, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		svc:      svc,
		products: products,
		logger:   log,
	}
}

type checkoutRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Note          string          `json:"note"`
	Items         []checkout.Line `json:"items" binding:"dive"`
}

// Checkout rebuilds the posted cart from catalog records and submits it.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid JSON format", []response.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	// Request-only checks run before the catalog is read.
	if err := checkout.ValidateCustomerName(req.CustomerName); err != nil {
		h.fail(c, err, nil)
		return
	}
	if len(req.Items) == 0 {
		h.fail(c, checkout.ErrEmptyCart, nil)
		return
	}

	ctx := c.Request.Context()
	sess := cart.NewSession(auth.GetUserID(ctx))
	sess.CustomerName = req.CustomerName
	sess.CustomerPhone = req.CustomerPhone
	sess.Note = req.Note

	if err := checkout.FillCart(ctx, h.products, sess.Cart, req.Items); err != nil {
		h.fail(c, err, nil)
		return
	}

	res, err := h.svc.Submit(ctx, sess)
	if err != nil {
		h.fail(c, err, res)
		return
	}
	c.JSON(http.StatusCreated, response.Success(res))
}

func (h *CheckoutHandler) fail(c *gin.Context, err error, res *checkout.Result) {
	var uerr *checkout.UnavailableError
	switch {
	case errors.As(err, &uerr):
		errs := make([]response.ValidationError, len(uerr.Lines))
		for i, line := range uerr.Lines {
			errs[i] = response.ValidationError{
				Field:   fmt.Sprintf("items[%d].product_id", line),
				Message: checkout.ErrProductUnavailable.Error(),
				Code:    "unavailable",
			}
		}
		c.JSON(http.StatusBadRequest, response.Error("Invalid cart", errs))
	case errors.Is(err, checkout.ErrOrderNotSaved):
		c.JSON(http.StatusBadGateway, response.PartialFailure(err.Error(), res))
	case errors.Is(err, checkout.ErrCustomerNameRequired), errors.Is(err, checkout.ErrCustomerNameTooLong):
		c.JSON(http.StatusBadRequest, response.Error(err.Error(), []response.ValidationError{
			{Field: "customer_name", Message: err.Error(), Code: "invalid"},
		}))
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, response.Error(err.Error(), []response.ValidationError{
			{Field: "items", Message: err.Error(), Code: "required"},
		}))
	default:
		h.logger.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error", nil))
	}
}
