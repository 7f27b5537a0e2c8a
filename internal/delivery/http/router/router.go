// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"almacen/internal/delivery/http/middleware"
	"almacen/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Reset-link validity probe lives at the top level so the URL handed
	// out by the resetlink endpoint works as-is.
	e.GET("/changepassword/:token", r.accountHandler.CheckResetLink)

	accountGroup := e.Group("/api/accounts")
	{
		accountGroup.POST("/hash/register", r.accountHandler.RegisterHashed)
		accountGroup.POST("/encrypt/register", r.accountHandler.RegisterEncrypted)
		accountGroup.POST("/login", r.accountHandler.Login)
		accountGroup.POST("/hash/verify", r.accountHandler.Verify)
		accountGroup.POST("/encrypt/verify", r.accountHandler.Verify)
		accountGroup.POST("/resetlink", r.accountHandler.RequestResetLink)
		accountGroup.POST("/changepassword", r.accountHandler.ConfirmPasswordReset)
	}

	// Routes that require a valid bearer token
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate)
	{
		apiGroup.GET("/profile", r.accountHandler.GetProfile)
	}
}
