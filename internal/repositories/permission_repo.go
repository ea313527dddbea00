package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pbx-admin/backend/internal/access"
)

// PermissionRepo reads the two grant collections consulted by the access
// decision. Reads are snapshot-consistent for one decision: each check
// fetches both sets once and never re-reads mid-decision.
type PermissionRepo struct {
	pool *pgxpool.Pool
}

func NewPermissionRepo(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

func (r *PermissionRepo) FindUserGrants(ctx context.Context, userID uuid.UUID) ([]access.Grant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT module, can_create, can_read, can_update, can_delete
		FROM user_permissions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanGrants(rows)
}

func (r *PermissionRepo) FindProfileGrants(ctx context.Context, profileID uuid.UUID) ([]access.Grant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT module, can_create, can_read, can_update, can_delete
		FROM profile_permissions WHERE profile_id = $1
	`, profileID)
	if err != nil {
		return nil, err
	}
	return scanGrants(rows)
}

func scanGrants(rows pgx.Rows) ([]access.Grant, error) {
	defer rows.Close()

	var grants []access.Grant
	for rows.Next() {
		var g access.Grant
		if err := rows.Scan(&g.Module, &g.Create, &g.Read, &g.Update, &g.Delete); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
