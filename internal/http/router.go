package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/access"
	"github.com/pbx-admin/backend/internal/config"
	"github.com/pbx-admin/backend/internal/http/handlers"
	"github.com/pbx-admin/backend/internal/middleware"
	"github.com/pbx-admin/backend/internal/services"
)

// Pipeline bundles the per-group guard dependencies so resource routers can
// be mounted behind the gate without re-threading every collaborator.
type Pipeline struct {
	cfg      *config.Config
	perms    middleware.PermissionSource
	resolver *access.Resolver
	audit    *services.AuditService
	log      *zap.Logger
}

func NewPipeline(cfg *config.Config, perms middleware.PermissionSource, resolver *access.Resolver, audit *services.AuditService, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, perms: perms, resolver: resolver, audit: audit, log: log}
}

// Protect mounts a route group behind the access gate and the audit trail.
// A non-empty module pins the whole group; an empty one falls back to the
// route-prefix table.
func (p *Pipeline) Protect(app *fiber.App, prefix string, module access.Module) fiber.Router {
	return app.Group(prefix,
		middleware.AccessGate(p.cfg, p.perms, p.resolver, module, p.log),
		middleware.AuditTrail(p.cfg, p.audit, p.log),
	)
}

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	pipeline *Pipeline,
	authHandler *handlers.AuthHandler,
	logHandler *handlers.LogHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if rdb != nil {
		app.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}

	// Identity resolution runs on every request past this point, including
	// ones with no registered route: an unauthenticated mutating request is
	// audited and rejected before fiber ever looks for a handler.
	app.Use(middleware.IdentityMiddleware(cfg, pipeline.audit, log))

	// Auth. Login is on the public allowlist; logout needs an identity but
	// no grant — both write their own LOGIN/LOGOUT records instead of going
	// through the generic audit trail.
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)

	// Audit trail read API, guarded by the log module grant.
	logGroup := pipeline.Protect(app, "/log", access.ModuleLog)
	logGroup.Get("/", logHandler.List)

	// Live audit stream (admin-only, token checked on upgrade).
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
