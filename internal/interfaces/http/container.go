package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/infrastructure/auth"
	"tickettracker/internal/infrastructure/config"
	"tickettracker/internal/infrastructure/metrics"
	"tickettracker/internal/infrastructure/permission"
	"tickettracker/internal/interfaces/http/middleware"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/db"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/services/markdown"
)

// Container holds the infrastructure, repositories, use cases and handlers
// of the HTTP server and owns their shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	throttle       gin.HandlerFunc

	enforcer   *permission.Enforcer
	jwtSvc     *auth.JWTService
	renderer   *markdown.Service
	txMgr      *db.TransactionManager
	policy     *authorization.TicketPolicy
	metrics    *metrics.Metrics
	dispatcher *events.Dispatcher
}

// NewContainer wires every component against an open database.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - casbin, markdown, JWT, metrics
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Repositories
	c.repos = newRepositories(gdb, c.renderer, c.enforcer)

	// Section 3: Event subscribers - metrics, Redis, email
	if err := c.initEvents(); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	// Section 4: Use cases and handlers
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, log.Named("auth"))
	c.throttle = c.newThrottle()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize group enforcer: %w", err)
	}
	c.enforcer = enforcer

	renderer, err := markdown.NewService(c.cfg.Markdown)
	if err != nil {
		return fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	c.renderer = renderer

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.txMgr = db.NewTransactionManager(c.db)
	c.policy = authorization.NewTicketPolicy()
	c.metrics = metrics.New()
	c.dispatcher = events.NewDispatcher()
	return nil
}

// Shutdown releases connections owned by the container. The database is
// closed by its owner.
func (c *Container) Shutdown(_ context.Context) {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}
