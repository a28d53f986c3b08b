package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"tickettracker/internal/infrastructure/config"
	"tickettracker/internal/interfaces/http/middleware"
	"tickettracker/internal/interfaces/http/routes"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"

	_ "tickettracker/docs"
)

// Router is the HTTP entry point built on top of the Container.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	utils.RegisterBindingTagNames()

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log.Named("access")))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.hdlrs.healthHandler.Health)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.hdlrs.ticketHandler,
		AuthMiddleware: r.authMiddleware,
		Throttle:       r.throttle,
	})
	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		ApplicationHandler: r.hdlrs.applicationHandler,
		UserHandler:        r.hdlrs.userHandler,
		AuthMiddleware:     r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
