// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"basket/internal/delivery/http/middleware"
	"basket/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	ListHandler     *handler.ListHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	categoryHandler *handler.CategoryHandler
	listHandler     *handler.ListHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		categoryHandler: params.CategoryHandler,
		listHandler:     params.ListHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The path shapes are part of the public contract and kept verbatim.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", handler.HealthCheck)

	// Account and session routes, no authentication required
	api.POST("/signup", r.userHandler.Signup)
	api.POST("/check-username", r.userHandler.CheckUsername)
	api.POST("/check-email", r.userHandler.CheckEmail)
	api.POST("/signin", r.userHandler.Signin)
	api.GET("/refresh-token", r.userHandler.RefreshToken)
	api.POST("/logout", r.userHandler.Logout)

	// Everything below requires a valid access token
	auth := api.Group("", r.authMiddleware.Authenticate)

	auth.GET("/user/profile", r.userHandler.GetProfile)

	auth.GET("/categories", r.categoryHandler.ListCategories)
	auth.POST("/add-category", r.categoryHandler.CreateCategory)
	auth.DELETE("/categories/:id", r.categoryHandler.DeleteCategory)

	auth.GET("/fetch-lists/:categoryId", r.listHandler.ListsByCategory)
	auth.POST("/categories/:categoryId/lists", r.listHandler.CreateList)
	auth.DELETE("/delete-lists/:listId", r.listHandler.DeleteList)
	auth.PATCH("/updatelist/:listID", r.listHandler.MergeItems)
	auth.PATCH("/updateItem/:listID/:itemID", r.listHandler.UpdateItem)
	auth.PATCH("/items/:itemId/toggle", r.listHandler.ToggleItem)
	auth.DELETE("/delete/:listId/item/:itemId", r.listHandler.DeleteItem)
	auth.GET("/lists/:listId/qrcode", r.listHandler.ListQRCode)
}
