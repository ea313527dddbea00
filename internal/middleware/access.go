package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/access"
	"github.com/pbx-admin/backend/internal/config"
)

const CtxModule = "module"

// PermissionSource provides the two grant collections for one decision.
// Implemented by repositories.PermissionRepo.
type PermissionSource interface {
	FindUserGrants(ctx context.Context, userID uuid.UUID) ([]access.Grant, error)
	FindProfileGrants(ctx context.Context, profileID uuid.UUID) ([]access.Grant, error)
}

// AccessGate authorizes the request against the caller's grants. The
// annotated module, when non-empty, pins every route in the group to that
// module; otherwise the resolver falls back to the route-prefix table.
//
// Denials respond before dispatch, so they deliberately leave no attempt
// record — only requests that reach the handler are bracketed by the audit
// trail middleware behind this gate.
func AccessGate(cfg *config.Config, perms PermissionSource, resolver *access.Resolver, annotated access.Module, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.IsPublicRoute(c.Path()) {
			return c.Next()
		}

		identity := GetIdentity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}

		module, _ := resolver.Resolve(annotated, c.OriginalURL())
		kind, _ := access.KindForMethod(c.Method())

		var userGrants, profileGrants []access.Grant
		if !identity.IsAdmin && module != "" && kind != "" {
			var err error
			userGrants, err = perms.FindUserGrants(c.Context(), identity.ID)
			if err != nil {
				log.Error("user grant lookup failed", zap.Error(err), zap.String("user_id", identity.ID.String()))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "permission lookup failed"})
			}
			if identity.ProfileID != nil {
				profileGrants, err = perms.FindProfileGrants(c.Context(), *identity.ProfileID)
				if err != nil {
					log.Error("profile grant lookup failed", zap.Error(err), zap.String("profile_id", identity.ProfileID.String()))
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "permission lookup failed"})
				}
			}
		}

		decision := access.Authorize(identity, module, kind, userGrants, profileGrants)
		if !decision.Allowed {
			switch decision.Reason {
			case access.ReasonModuleUnresolved, access.ReasonKindUnresolved:
				// Configuration gap: a protected route with no module mapping.
				log.Error("access mapping unresolved",
					zap.String("reason", string(decision.Reason)),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
				)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": string(decision.Reason)})
			case access.ReasonUnauthenticated:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
			default:
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": string(decision.Reason)})
			}
		}

		c.Locals(CtxModule, string(module))
		return c.Next()
	}
}
