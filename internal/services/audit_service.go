package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbx-admin/backend/internal/events"
	"github.com/pbx-admin/backend/internal/models"
)

// AuditStore is the persistence surface the recorder needs. Implemented by
// repositories.AuditRepo; tests swap an in-memory fake.
type AuditStore interface {
	Insert(ctx context.Context, entry models.AuditLog) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, meta map[string]any) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

// AuditService brackets guarded requests with attempt/outcome records and
// mirrors every write onto the audit event stream.
//
// Error contract, per path:
//   - RecordAttempt propagates storage errors: losing the audit record for a
//     mutating operation is worse than failing the request.
//   - RecordOutcome and RecordUnauthenticated return the error for the
//     caller to log, never to surface; the guarded operation's own response
//     must not be masked by audit bookkeeping.
type AuditService struct {
	store     AuditStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewAuditService(store AuditStore, publisher events.Publisher, log *zap.Logger) *AuditService {
	return &AuditService{store: store, publisher: publisher, log: log}
}

// RecordAttempt persists an ATTEMPTED record before the handler runs and
// returns its id, the handle for the matching outcome update.
func (s *AuditService) RecordAttempt(ctx context.Context, entry models.AuditLog) (uuid.UUID, error) {
	entry.Status = models.AuditStatusAttempted

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		return uuid.Nil, err
	}

	s.publish(ctx, events.EventAuditAttempt, map[string]any{
		"id":     id.String(),
		"actor":  derefActor(entry.ActorID),
		"action": entry.Action,
		"module": entry.Module,
		"ip":     entry.IP,
	})
	return id, nil
}

// RecordOutcome moves the attempt record to SUCCEEDED or FAILED, exactly
// once per request, after the handler settles.
func (s *AuditService) RecordOutcome(ctx context.Context, id uuid.UUID, status string, meta map[string]any) error {
	if err := s.store.UpdateStatus(ctx, id, status, meta); err != nil {
		return err
	}

	s.publish(ctx, events.EventAuditOutcome, map[string]any{
		"id":     id.String(),
		"status": status,
	})
	return nil
}

// RecordUnauthenticated captures a request that failed identity resolution
// on a non-public route. The actor is the "unknown" sentinel so these stay
// distinguishable from public-by-design traffic. No outcome update ever
// follows: the request is rejected before dispatch.
func (s *AuditService) RecordUnauthenticated(ctx context.Context, ip, method, path, reason string, meta map[string]any) error {
	action, ok := models.AuditActionForMethod(method)
	if !ok {
		return nil
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta["authenticated"] = false
	meta["method"] = method
	meta["path"] = path
	meta["reason"] = reason

	actor := models.AuditActorUnknown
	entry := models.AuditLog{
		ActorID: &actor,
		IP:      ip,
		Status:  models.AuditStatusAttempted,
		Action:  action,
		Meta:    meta,
	}

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventAuditAttempt, map[string]any{
		"id":     id.String(),
		"actor":  actor,
		"action": action,
		"ip":     ip,
		"reason": reason,
	})
	return nil
}

// RecordAuth writes a single-shot LOGIN/LOGOUT record. Auth endpoints are
// public, so these do not follow the attempt/outcome lifecycle.
func (s *AuditService) RecordAuth(ctx context.Context, actorID *string, ip, action, status string, meta map[string]any) error {
	module := "auth"
	entry := models.AuditLog{
		ActorID: actorID,
		IP:      ip,
		Status:  status,
		Action:  action,
		Module:  &module,
		Meta:    meta,
	}

	_, err := s.store.Insert(ctx, entry)
	if err != nil {
		return err
	}

	eventType := events.EventLoginSucceeded
	if status == models.AuditStatusFailed {
		eventType = events.EventLoginFailed
	}
	s.publish(ctx, eventType, map[string]any{
		"actor":  derefActor(actorID),
		"action": action,
		"ip":     ip,
	})
	return nil
}

func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.store.List(ctx, limit, offset)
}

// publish mirrors the record onto the live stream. Stream delivery is
// best-effort and must never affect the request.
func (s *AuditService) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.StreamAudit, events.Event{Type: eventType, Payload: payload}); err != nil {
		s.log.Warn("audit event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func derefActor(actor *string) string {
	if actor == nil {
		return ""
	}
	return *actor
}
