package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit record lifecycle. A record is created ATTEMPTED before the guarded
// handler runs and updated exactly once afterwards. Records are never
// deleted here; retention is an external concern.
const (
	AuditStatusAttempted = "ATTEMPTED"
	AuditStatusSucceeded = "SUCCEEDED"
	AuditStatusFailed    = "FAILED"
)

const (
	AuditActionCreate = "CREATE"
	AuditActionEdit   = "EDIT"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

// AuditActorUnknown marks a non-public mutating request that never resolved
// an identity. A nil ActorID instead means the route was public by design.
const AuditActorUnknown = "unknown"

type AuditLog struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   *string        `json:"actor_id,omitempty"`
	IP        string         `json:"ip"`
	Status    string         `json:"status"`
	Action    string         `json:"action"`
	Module    *string        `json:"module,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AuditActionForMethod maps a mutating HTTP verb to its audit action. GET is
// deliberately absent: read traffic is never audited.
func AuditActionForMethod(method string) (string, bool) {
	switch method {
	case "POST":
		return AuditActionCreate, true
	case "PUT", "PATCH":
		return AuditActionEdit, true
	case "DELETE":
		return AuditActionDelete, true
	}
	return "", false
}
