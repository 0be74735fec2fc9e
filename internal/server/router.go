package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	catH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	offerH "github.com/fekuna/omnipos-storefront-service/internal/offer/handler"
	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	roleH "github.com/fekuna/omnipos-storefront-service/internal/role/handler"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/middleware"
	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Products   *prodH.ProductHandler
	Categories *catH.CategoryHandler
	Offers     *offerH.OfferHandler
	Orders     *orderH.OrderHandler
	Checkout   *checkoutH.CheckoutHandler
	Roles      *roleH.RoleHandler
}

// NewRouter builds the HTTP API. roles may be nil, leaving the gateway role header as the only source of roles.
func NewRouter(h Handlers, roles auth.RoleResolver, corsOrigins []string, log logger.ZapLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(corsConfig(corsOrigins)))
	r.Use(auth.Identity(roles))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Success(map[string]string{"status": "OK"}))
	})

	api := r.Group("/api/v1")
	{
		api.GET("/products", h.Products.ListCatalog)
		api.GET("/products/:id", h.Products.GetCatalogItem)
		api.GET("/categories", h.Categories.ListCategories)
		api.GET("/offers", h.Offers.ListLiveOffers)
		api.POST("/checkout", h.Checkout.Checkout)

		orders := api.Group("/orders", auth.RequireUser())
		orders.GET("", h.Orders.ListMyOrders)
		orders.GET("/:id", h.Orders.GetOrder)

		api.GET("/me/roles", auth.RequireUser(), h.Roles.MyRoles)
	}

	admin := api.Group("/admin")

	catalog := admin.Group("", auth.RequireRole(model.CatalogRoles...))
	{
		catalog.GET("/products", h.Products.ListProducts)
		catalog.POST("/products", h.Products.CreateProduct)
		catalog.PUT("/products/:id", h.Products.UpdateProduct)
		catalog.DELETE("/products/:id", h.Products.DeleteProduct)

		catalog.POST("/categories", h.Categories.CreateCategory)
		catalog.PUT("/categories/:id", h.Categories.UpdateCategory)
		catalog.DELETE("/categories/:id", h.Categories.DeleteCategory)

		catalog.GET("/offers", h.Offers.ListOffers)
		catalog.POST("/offers", h.Offers.CreateOffer)
		catalog.GET("/offers/:id", h.Offers.GetOffer)
		catalog.PUT("/offers/:id", h.Offers.UpdateOffer)
		catalog.DELETE("/offers/:id", h.Offers.DeleteOffer)
	}

	staff := admin.Group("/orders", auth.RequireRole(model.OrderStaffRoles...))
	{
		staff.GET("", h.Orders.ListOrders)
		staff.GET("/:id", h.Orders.GetOrder)
		staff.PATCH("/:id/status", h.Orders.UpdateStatus)
	}

	roleAdmin := admin.Group("", auth.RequireAdmin())
	{
		roleAdmin.GET("/roles", h.Roles.ListRoles)
		roleAdmin.POST("/roles", h.Roles.AssignRole)
		roleAdmin.DELETE("/roles/:id", h.Roles.RemoveRole)
		roleAdmin.GET("/role-audit-logs", h.Roles.ListAuditLogs)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", auth.HeaderUserID, auth.HeaderUserRole},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
