package handler

import (
	"errors"
	"net/http"

	"genzmart-be/internal/metrics"
	"genzmart-be/internal/middleware"
	"genzmart-be/internal/product"
	"genzmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Payments *PaymentHandler
	Checkout *CheckoutHandler
	Auth     *AuthHandler
	Admin    *AdminHandler
	Products product.Service
}

// NewRouter assembles the HTTP surface: public storefront and auth routes,
// JWT-protected payment and checkout routes, and admin-only management.
func NewRouter(r Router) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger())

	// The limiter keys buckets by user when authenticated, so on protected
	// groups it runs after RequireAuth has resolved the identity. Health and
	// metrics stay unthrottled.
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	engine.GET("/products", middleware.RateLimit(), func(c *gin.Context) {
		products, err := r.Products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
			return
		}
		if products == nil {
			products = []product.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	})

	engine.GET("/products/:id", middleware.RateLimit(), func(c *gin.Context) {
		id, err := utils.ToUint(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		p, err := r.Products.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	})

	auth := engine.Group("/auth", middleware.RateLimit())
	{
		auth.POST("/register", r.Auth.Register)
		auth.POST("/login", r.Auth.Login)
	}

	payments := engine.Group("/payments", middleware.RateLimit())
	{
		payments.POST("/razorpay/create-order", r.Payments.CreateOrder)
		payments.POST("/razorpay/verify", r.Payments.Verify)
	}

	checkoutGroup := engine.Group("/checkout", middleware.RequireAuth(), middleware.RateLimit())
	{
		checkoutGroup.POST("/begin", r.Checkout.Begin)
		checkoutGroup.GET("/:id", r.Checkout.Get)
		checkoutGroup.POST("/:id/callback", r.Checkout.Callback)
		checkoutGroup.POST("/:id/cancel", r.Checkout.Cancel)
	}

	admin := engine.Group("/admin", middleware.RequireAuth(), middleware.RateLimit(), middleware.RequireAdmin())
	{
		admin.GET("/products", r.Admin.ListProducts)
		admin.POST("/products", r.Admin.CreateProduct)
		admin.PUT("/products/:id", r.Admin.UpdateProduct)
		admin.DELETE("/products/:id", r.Admin.DeleteProduct)

		admin.GET("/orders", r.Admin.ListOrders)
		admin.DELETE("/orders/:id", r.Admin.DeleteOrder)

		admin.GET("/users", r.Admin.ListUsers)
		admin.DELETE("/users/:id", r.Admin.DeleteUser)
	}

	return engine
}
