// Package checkout converts a shopping session into a persisted order plus an outward
// chat handoff. Recording the order and communicating it are independent: a failed
// write is reported but does not stop the handoff.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/handoff"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

const MaxCustomerNameLength = 100

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrCustomerNameTooLong  = fmt.Errorf("customer name must be at most %d characters", MaxCustomerNameLength)
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNotSaved        = errors.New("order could not be saved")
)

// OrderSink durably records a finalized order and returns its id.
type OrderSink interface {
	PlaceOrder(ctx context.Context, order *model.Order) (string, error)
}

// Notifier hands a placed order to the outward messaging channel.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *model.Order) handoff.Handoff
}

type Result struct {
	OrderID   string          `json:"order_id,omitempty"`
	Saved     bool            `json:"saved"`
	Total     int64           `json:"total"`
	ItemCount int             `json:"item_count"`
	Handoff   handoff.Handoff `json:"handoff"`
}

type Service struct {
	sink     OrderSink
	notifier Notifier
	logger   logger.ZapLogger
}

func NewService(sink OrderSink, notifier Notifier, log logger.ZapLogger) *Service {
	return &Service{sink: sink, notifier: notifier, logger: log}
}

// Validate checks the checkout preconditions without touching any external system.
func Validate(sess *cart.Session) error {
	if err := ValidateCustomerName(sess.CustomerName); err != nil {
		return err
	}
	if sess.Cart == nil || sess.Cart.IsEmpty() {
		return ErrEmptyCart
	}
	return nil
}

// ValidateCustomerName requires a non-blank name of at most MaxCustomerNameLength characters.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameRequired
	}
	if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		return ErrCustomerNameTooLong
	}
	return nil
}

// Assemble snapshots the session's cart into an unsaved order with status sent.
func Assemble(sess *cart.Session) *model.Order {
	items := sess.Cart.Items()

	o := &model.Order{
		CustomerName: strings.TrimSpace(sess.CustomerName),
		TotalAmount:  sess.Cart.Total(),
		Status:       model.OrderStatusSent,
		Items:        make([]model.OrderItem, 0, len(items)),
	}
	if sess.UserID != "" {
		uid := sess.UserID
		o.UserID = &uid
	}
	if phone := strings.TrimSpace(sess.CustomerPhone); phone != "" {
		o.CustomerPhone = &phone
	}
	if note := strings.TrimSpace(sess.Note); note != "" {
		o.SpecialRequest = &note
	}

	for _, item := range items {
		o.Items = append(o.Items, model.OrderItem{
			ProductID:    item.Product.ID,
			ProductName:  item.Product.Name,
			ProductBrand: item.Product.Brand,
			ProductUnit:  item.Product.Unit,
			ProductImage: item.Product.ImageURL,
			Quantity:     item.Quantity,
			PricePerUnit: item.Product.Price,
			Subtotal:     item.Subtotal(),
		})
	}
	return o
}

// Submit validates, persists and hands off the session's cart.
//
// Validation failures return (nil, err) with no side effects. When the sink write fails
// the returned Result is still non-nil (Saved false, handoff filled in), the error wraps
// ErrOrderNotSaved and the cart is kept for a retry. On success the cart is cleared and
// the note reset.
func (s *Service) Submit(ctx context.Context, sess *cart.Session) (*Result, error) {
	if err := Validate(sess); err != nil {
		return nil, err
	}

	o := Assemble(sess)
	res := &Result{
		Total:     o.TotalAmount,
		ItemCount: sess.Cart.ItemCount(),
	}

	id, saveErr := s.sink.PlaceOrder(ctx, o)
	if saveErr != nil {
		s.logger.Error("Failed to save order history",
			zap.String("customer_name", o.CustomerName),
			zap.Int64("total", o.TotalAmount),
			zap.Error(saveErr),
		)
		o.ID = ""
	} else {
		o.ID = id
		res.OrderID = id
		res.Saved = true
	}

	res.Handoff = s.notifier.OrderPlaced(ctx, o)

	if saveErr != nil {
		return res, fmt.Errorf("%w: %v", ErrOrderNotSaved, saveErr)
	}

	sess.Cart.Clear()
	sess.Note = ""

	s.logger.Info("Order placed",
		zap.String("order_id", id),
		zap.Int("lines", len(o.Items)),
		zap.Int64("total", o.TotalAmount),
	)
	return res, nil
}
