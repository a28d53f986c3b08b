package routes

import (
	"github.com/gin-gonic/gin"

	"tickettracker/internal/interfaces/http/handlers"
	"tickettracker/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	ApplicationHandler *handlers.ApplicationHandler
	UserHandler        *handlers.UserHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	apps := engine.Group("/applications")
	{
		apps.GET("", config.ApplicationHandler.ListApplications)
		apps.POST("", config.AuthMiddleware.RequireAuth(), config.ApplicationHandler.CreateApplication)
	}

	users := engine.Group("/users", config.AuthMiddleware.RequireAuth())
	{
		users.GET("/staff", config.UserHandler.ListStaff)
	}
}
