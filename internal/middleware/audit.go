package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/config"
	"github.com/pbx-admin/backend/internal/models"
	"github.com/pbx-admin/backend/internal/services"
)

// AuditTrail brackets every mutating, authorized request: an ATTEMPTED
// record goes in before the handler runs and is moved to SUCCEEDED or FAILED
// after it settles, exactly once, keyed by the attempt's id.
//
// GET and unmapped verbs are never audited, nor are ignored prefixes (the
// audit trail does not audit reads of itself). A failed attempt insert fails
// the request with 500 — losing the record of a mutation is worse than
// refusing it. The outcome update is awaited before the response finalizes,
// but its failure is only logged: audit bookkeeping never replaces the
// handler's own response.
func AuditTrail(cfg *config.Config, audit *services.AuditService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if cfg.IsPublicRoute(path) || cfg.IsAuditIgnored(path) {
			return c.Next()
		}

		action, ok := models.AuditActionForMethod(c.Method())
		if !ok {
			return c.Next()
		}

		identity := GetIdentity(c)
		if identity == nil {
			// The gate rejects unauthenticated requests before this point.
			return c.Next()
		}

		meta := map[string]any{
			"method": c.Method(),
			"path":   c.OriginalURL(),
		}
		if body := c.Body(); len(body) > 0 {
			meta["body"] = string(body)
		}
		if params := c.AllParams(); len(params) > 0 {
			meta["params"] = params
		}

		actorID := identity.ID.String()
		entry := models.AuditLog{
			ActorID: &actorID,
			IP:      c.IP(),
			Action:  action,
			Meta:    meta,
		}
		if module, _ := c.Locals(CtxModule).(string); module != "" {
			entry.Module = &module
		}

		id, err := audit.RecordAttempt(c.Context(), entry)
		if err != nil {
			log.Error("attempt audit failed", zap.Error(err), zap.String("path", path))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "audit unavailable"})
		}

		handlerErr := c.Next()

		status := models.AuditStatusSucceeded
		outcome := map[string]any{"status_code": c.Response().StatusCode()}
		if handlerErr != nil {
			status = models.AuditStatusFailed
			outcome["error"] = handlerErr.Error()
			var fe *fiber.Error
			if errors.As(handlerErr, &fe) {
				outcome["status_code"] = fe.Code
			}
		}

		if err := audit.RecordOutcome(c.Context(), id, status, outcome); err != nil {
			log.Error("outcome audit failed", zap.Error(err), zap.String("audit_id", id.String()))
		}

		return handlerErr
	}
}
