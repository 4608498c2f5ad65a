// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AdminHandler   *handler.AdminHandler

	AuthMiddleware   *middleware.AuthMiddleware
	LoggerMiddleware *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler

	authMiddleware   *middleware.AuthMiddleware
	loggerMiddleware *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		productHandler:   params.ProductHandler,
		cartHandler:      params.CartHandler,
		orderHandler:     params.OrderHandler,
		adminHandler:     params.AdminHandler,
		authMiddleware:   params.AuthMiddleware,
		loggerMiddleware: params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Every route resolves the session; anonymous requests pass through with
	// no claims set.
	e.Use(r.loggerMiddleware.Handle)
	e.Use(r.authMiddleware.ResolveSession)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/signout", r.authHandler.SignOut)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.RequireAuth)
	}

	// Public catalog plus authenticated reviews
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.POST("", r.productHandler.Create, r.authMiddleware.RequireAuth)
		productGroup.PUT("/:id", r.productHandler.Update, r.authMiddleware.RequireAuth)
		productGroup.DELETE("/:id", r.productHandler.Delete, r.authMiddleware.RequireAuth)
		productGroup.POST("/:id/reviews", r.productHandler.AddReview, r.authMiddleware.RequireAuth)
	}

	// Seller routes; the services allow admins through as well
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(r.authMiddleware.RequireAuth)
	{
		sellerGroup.GET("/products", r.productHandler.ListMine)
	}

	// Cart routes work for guests and signed-in users alike
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Checkout and order history require a session
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.RequireAuth)
	{
		checkoutGroup.POST("", r.orderHandler.BeginCheckout)
		checkoutGroup.POST("/finalize", r.orderHandler.FinalizeCheckout)
	}

	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.RequireAuth)
	{
		orderGroup.GET("", r.orderHandler.ListMine)
		orderGroup.GET("/stats", r.orderHandler.Stats)
	}

	// Back office requires the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireAuth)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/users/:id", r.adminHandler.GetUser)
		adminGroup.PUT("/users/:id", r.adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)
		adminGroup.GET("/orders", r.adminHandler.ListOrders)
		adminGroup.PATCH("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
	}
}
