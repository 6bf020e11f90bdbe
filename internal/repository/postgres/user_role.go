package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type userRoleRepository struct {
	db *sql.DB
}

func NewUserRoleRepository(db *sql.DB) repository.UserRoleRepository {
	return &userRoleRepository{db: db}
}

const userRoleColumns = `id, user_id, role_id, organization_id, agency_id, assigned_on, assigned_by,
	expires_on, is_active, revoked_on, revoked_by`

func (r *userRoleRepository) Create(ctx context.Context, g *domain.UserRole) error {
	query := `INSERT INTO user_roles (user_id, role_id, organization_id, agency_id, assigned_on,
	          assigned_by, expires_on, is_active)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`
	if g.AssignedOn.IsZero() {
		g.AssignedOn = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		g.UserID, g.RoleID, g.OrganizationID, g.AgencyID, g.AssignedOn,
		g.AssignedBy, g.ExpiresOn, g.IsActive,
	).Scan(&g.ID)
	return mapError(err)
}

func scanUserRole(row interface{ Scan(...any) error }) (*domain.UserRole, error) {
	g := &domain.UserRole{}
	err := row.Scan(&g.ID, &g.UserID, &g.RoleID, &g.OrganizationID, &g.AgencyID, &g.AssignedOn,
		&g.AssignedBy, &g.ExpiresOn, &g.IsActive, &g.RevokedOn, &g.RevokedBy)
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

func (r *userRoleRepository) GetByID(ctx context.Context, id int32) (*domain.UserRole, error) {
	query := `SELECT ` + userRoleColumns + ` FROM user_roles WHERE id = $1`
	return scanUserRole(r.db.QueryRowContext(ctx, query, id))
}

// Revoke deactivates the grant in place. Grants are never hard-deleted here.
func (r *userRoleRepository) Revoke(ctx context.Context, id int32, revokedBy int32, revokedOn time.Time) error {
	query := `UPDATE user_roles SET is_active = FALSE, revoked_on = $2, revoked_by = $3
	          WHERE id = $1 AND is_active`
	res, err := r.db.ExecContext(ctx, query, id, revokedOn, revokedBy)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRoleRepository) ListByUser(ctx context.Context, userID int32) ([]domain.UserRole, error) {
	query := `SELECT ` + userRoleColumns + ` FROM user_roles WHERE user_id = $1 ORDER BY assigned_on DESC`
	return r.queryGrants(ctx, query, userID)
}

func (r *userRoleRepository) ListEffectiveByUser(ctx context.Context, userID int32, now time.Time) ([]domain.UserRole, error) {
	query := `SELECT ` + userRoleColumns + ` FROM user_roles
	          WHERE user_id = $1 AND is_active AND (expires_on IS NULL OR expires_on >= $2)
	          ORDER BY assigned_on DESC`
	return r.queryGrants(ctx, query, userID, now)
}

func (r *userRoleRepository) DeleteByUser(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	return mapError(err)
}

func (r *userRoleRepository) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_roles WHERE NOT is_active AND revoked_on IS NOT NULL AND revoked_on < $1`, cutoff)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}

func (r *userRoleRepository) queryGrants(ctx context.Context, query string, args ...any) ([]domain.UserRole, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var grants []domain.UserRole
	for rows.Next() {
		g, err := scanUserRole(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, *g)
	}
	return grants, rows.Err()
}
