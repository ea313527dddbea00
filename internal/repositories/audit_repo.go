package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pbx-admin/backend/internal/models"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Insert creates the attempt record and returns its generated id. The id is
// the handle for the single status update that follows the handler.
func (r *AuditRepo) Insert(ctx context.Context, entry models.AuditLog) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (actor_id, ip, status, action, module, meta)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, entry.ActorID, entry.IP, entry.Status, entry.Action, entry.Module, entry.Meta).Scan(&id)
	return id, err
}

// UpdateStatus moves a record out of ATTEMPTED, merging outcome metadata
// into the existing meta document.
func (r *AuditRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, meta map[string]any) error {
	if meta == nil {
		_, err := r.pool.Exec(ctx, `
			UPDATE audit_log SET status = $2, updated_at = now() WHERE id = $1
		`, id, status)
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE audit_log
		SET status = $2, meta = COALESCE(meta, '{}'::jsonb) || $3, updated_at = now()
		WHERE id = $1
	`, id, status, meta)
	return err
}

func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, actor_id, ip, status, action, module, meta, created_at, updated_at
		FROM audit_log
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.ActorID, &l.IP, &l.Status, &l.Action, &l.Module, &l.Meta, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
