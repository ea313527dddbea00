package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/http/dto"
	"github.com/pbx-admin/backend/internal/services"
)

type LogHandler struct {
	audit *services.AuditService
	log   *zap.Logger
}

func NewLogHandler(audit *services.AuditService, log *zap.Logger) *LogHandler {
	return &LogHandler{audit: audit, log: log}
}

// List returns audit records newest first. Protected by the log module
// grant; the records themselves are never mutated through this API.
func (h *LogHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := h.audit.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("audit list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.LogListResponse{Logs: logs, Limit: limit, Offset: offset})
}
