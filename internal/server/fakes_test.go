package server

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	catDto "github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	orderDto "github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	prodDto "github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	roleDto "github.com/fekuna/omnipos-storefront-service/internal/role/dto"
)

type productRepo struct {
	mu       sync.Mutex
	products map[string]model.Product
}

func (r *productRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) FindAll(_ context.Context, f *prodDto.ProductFilters) ([]model.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Product{}
	for _, p := range r.products {
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.Create(ctx, p)
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type categoryRepo struct {
	mu   sync.Mutex
	byID map[string]model.Category
}

func (r *categoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = *c
	return nil
}

func (r *categoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) FindAll(_ context.Context, _ *catDto.CategoryFilters) ([]model.Category, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Category{}
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, len(out), nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.Create(ctx, c)
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type offerRepo struct {
	mu     sync.Mutex
	offers []model.Offer
}

func (r *offerRepo) Create(_ context.Context, o *model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers = append([]model.Offer{*o}, r.offers...)
	return nil
}

func (r *offerRepo) FindByID(_ context.Context, id string) (*model.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offers {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *offerRepo) FindAll(context.Context) ([]model.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Offer{}, r.offers...), nil
}

func (r *offerRepo) Update(_ context.Context, o *model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.offers {
		if r.offers[i].ID == o.ID {
			r.offers[i] = *o
		}
	}
	return nil
}

func (r *offerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.offers {
		if r.offers[i].ID == id {
			r.offers = append(r.offers[:i], r.offers[i+1:]...)
			return nil
		}
	}
	return nil
}

type orderRepo struct {
	mu        sync.Mutex
	orders    map[string]model.Order
	items     map[string][]model.OrderItem
	failWrite bool
}

func (r *orderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errors.New("connection refused")
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *orderRepo) CreateItems(_ context.Context, items []model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepo) FindAll(_ context.Context, f *orderDto.OrderFilters) ([]model.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if f.UserID != "" && (o.UserID == nil || *o.UserID != f.UserID) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (r *orderRepo) FindItems(_ context.Context, orderID string) ([]model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.OrderItem{}, r.items[orderID]...), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[id]
	o.Status = status
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return nil
}

type roleRepo struct {
	mu    sync.Mutex
	roles map[string]model.UserRole
	logs  []model.RoleAuditLog
}

func (r *roleRepo) Create(_ context.Context, ur *model.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[ur.ID] = *ur
	return nil
}

func (r *roleRepo) FindByID(_ context.Context, id string) (*model.UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ur, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	return &ur, nil
}

func (r *roleRepo) FindByUser(_ context.Context, userID string) ([]model.UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.UserRole{}
	for _, ur := range r.roles {
		if ur.UserID == userID {
			out = append(out, ur)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (r *roleRepo) FindAll(_ context.Context, f *roleDto.RoleFilters) ([]model.UserRole, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.UserRole{}
	for _, ur := range r.roles {
		if f.UserID != "" && !strings.Contains(ur.UserID, f.UserID) {
			continue
		}
		if f.Role != "" && string(ur.Role) != f.Role {
			continue
		}
		out = append(out, ur)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, len(out), nil
}

func (r *roleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, id)
	return nil
}

func (r *roleRepo) CreateAuditLog(_ context.Context, l *model.RoleAuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append([]model.RoleAuditLog{*l}, r.logs...)
	return nil
}

func (r *roleRepo) ListAuditLogs(_ context.Context, limit int) ([]model.RoleAuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit < len(r.logs) {
		return append([]model.RoleAuditLog{}, r.logs[:limit]...), nil
	}
	return append([]model.RoleAuditLog{}, r.logs...), nil
}
