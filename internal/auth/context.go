package auth

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/metadata"
)

const (
	RoleAdmin = string(model.RoleAdmin)
	RoleUser  = string(model.RoleUser)

	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	mdUserID   = "x-user-id"
	mdUserRole = "x-user-role"
)

// UserContext is the caller identity: the gateway-forwarded id and role plus any roles stored for the user.
type UserContext struct {
	UserID string
	Role   string
	Roles  []model.Role
}

// HasRole reports whether the caller holds any of roles, from the gateway header or the role store.
func (u UserContext) HasRole(roles ...model.Role) bool {
	for _, want := range roles {
		if u.Role == string(want) {
			return true
		}
		for _, r := range u.Roles {
			if r == want {
				return true
			}
		}
	}
	return false
}

func (u UserContext) IsAdmin() bool {
	return u.HasRole(model.RoleAdmin)
}

// RoleResolver looks up the roles stored for a user.
type RoleResolver interface {
	RolesForUser(ctx context.Context, userID string) ([]model.Role, error)
}

type ctxKey struct{}

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the identity stored by WithUser, falling back to incoming grpc metadata.
func FromContext(ctx context.Context) UserContext {
	if u, ok := ctx.Value(ctxKey{}).(UserContext); ok {
		return u
	}

	var u UserContext
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return u
	}
	if val := md.Get(mdUserID); len(val) > 0 {
		u.UserID = val[0]
	}
	if val := md.Get(mdUserRole); len(val) > 0 {
		u.Role = val[0]
	}
	return u
}

func GetUserID(ctx context.Context) string {
	return FromContext(ctx).UserID
}

// Identity copies the gateway headers into the request context and, when roles is set,
// attaches the caller's stored roles. A failed lookup leaves only the header role in effect.
func Identity(roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := UserContext{
			UserID: c.GetHeader(HeaderUserID),
			Role:   c.GetHeader(HeaderUserRole),
		}
		if roles != nil && u.UserID != "" {
			stored, err := roles.RolesForUser(c.Request.Context(), u.UserID)
			if err != nil {
				_ = c.Error(err)
			} else {
				u.Roles = stored
			}
		}
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), u))
		c.Next()
	}
}

// RequireUser rejects requests without a forwarded user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c.Request.Context()) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Missing user context", nil))
			return
		}
		c.Next()
	}
}

// RequireRole rejects callers holding none of roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c.Request.Context()).HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("Insufficient role", nil))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c.Request.Context()).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("Admin role required", nil))
			return
		}
		c.Next()
	}
}
