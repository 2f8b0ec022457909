package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds everything the router needs to assemble the HTTP surface
type Config struct {
	Env           string
	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration
	Logger        *zap.Logger
	System        *handler.SystemHandler
	Registrars    []RouteRegistrar
}

// New builds the gin engine with middleware and all routes registered.
// When no JWT secret is configured (development), the X-Actor header
// identifies the actor instead of a bearer token.
func New(cfg Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
	)

	if cfg.JWTSecret != "" {
		jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration)
		engine.Use(middleware.JWTAuth(jwtService, cfg.Logger, "/health", "/ready"))
	} else {
		engine.Use(middleware.DevActor())
	}

	cfg.System.RegisterRoutes(engine)

	api := engine.Group("/api/v1")
	for _, r := range cfg.Registrars {
		r.RegisterRoutes(api)
	}
	return engine
}
