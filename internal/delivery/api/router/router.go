// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pharmacy/config"
	"pharmacy/internal/delivery/api/middleware"
	"pharmacy/internal/delivery/api/router/handler"
	"pharmacy/internal/domain/authz"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	DrugHandler    *handler.DrugHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	drugHandler    *handler.DrugHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		drugHandler:    params.DrugHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// NewRuleSet builds the access rules enforced by the auth middleware.
func NewRuleSet(cfg *config.Config) (*authz.RuleSet, error) {
	return authz.DefaultRules(cfg.Auth.RegistrationOpen())
}

// RegisterRoutes sets up all the API routes for the application.
// Access control is decided per request by the auth middleware, which runs
// for every route including unknown ones.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	usersGroup := e.Group("/api/users")
	{
		usersGroup.POST("", r.userHandler.CreateUser)
		usersGroup.GET("/me", r.userHandler.GetCurrentUser)
		usersGroup.GET("/:id", r.userHandler.GetUser)
	}

	drugsGroup := e.Group("/api/drugs")
	{
		drugsGroup.GET("", r.drugHandler.ListDrugs)
		drugsGroup.POST("", r.drugHandler.CreateDrug)
		drugsGroup.GET("/:id", r.drugHandler.GetDrug)
		drugsGroup.DELETE("/:id", r.drugHandler.DeleteDrug)
	}
}
