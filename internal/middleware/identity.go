package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/access"
	"github.com/pbx-admin/backend/internal/auth"
	"github.com/pbx-admin/backend/internal/config"
	"github.com/pbx-admin/backend/internal/services"
)

const CtxIdentity = "identity"

// GetIdentity returns the authenticated identity, nil when the request never
// resolved one (public route or middleware not yet run).
func GetIdentity(c *fiber.Ctx) *access.Identity {
	id, _ := c.Locals(CtxIdentity).(*access.Identity)
	return id
}

// IdentityMiddleware resolves the caller from the bearer token. Public
// routes pass through untouched. A missing, malformed, invalid or expired
// token is itself a security event: it is recorded as an unauthenticated
// attempt (actor "unknown") before the 401 — authentication failures are
// audited, routine authorization denials downstream are not.
func IdentityMiddleware(cfg *config.Config, audit *services.AuditService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.IsPublicRoute(c.Path()) {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenStr == authHeader {
			recordUnauthenticated(c, audit, log, "token_missing")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed authorization header"})
		}

		claims, err := auth.ParseJWT(cfg.JWTAccessSecret, tokenStr)
		if err != nil {
			reason := "token_invalid"
			if auth.IsExpired(err) {
				reason = "token_expired"
			}
			log.Debug("jwt parse error", zap.Error(err))
			recordUnauthenticated(c, audit, log, reason)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxIdentity, claims.Identity())
		return c.Next()
	}
}

// recordUnauthenticated is best-effort: a failed audit write is logged and
// the 401 goes out regardless.
func recordUnauthenticated(c *fiber.Ctx, audit *services.AuditService, log *zap.Logger, reason string) {
	meta := map[string]any{}
	if q := string(c.Request().URI().QueryString()); q != "" {
		meta["query"] = q
	}
	if body := c.Body(); len(body) > 0 {
		meta["body"] = string(body)
	}

	if err := audit.RecordUnauthenticated(c.Context(), c.IP(), c.Method(), c.Path(), reason, meta); err != nil {
		log.Error("unauthenticated attempt audit failed", zap.Error(err), zap.String("path", c.Path()))
	}
}
