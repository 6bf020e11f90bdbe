package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"github.com/lib/pq"
)

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

const roleColumns = `id, organization_id, name, description, role_type, is_system_role,
	is_default_role, priority, permissions, color, icon, created_on, updated_on`

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	query := `INSERT INTO roles (organization_id, name, description, role_type, is_system_role,
	          is_default_role, priority, permissions, color, icon, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`
	now := time.Now()
	role.CreatedOn = now
	role.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		role.OrganizationID, role.Name, role.Description, role.RoleType, role.IsSystemRole,
		role.IsDefaultRole, role.Priority, pq.Array(role.Permissions), role.Color, role.Icon,
		role.CreatedOn, role.UpdatedOn,
	).Scan(&role.ID)
	return mapError(err)
}

func scanRole(row interface{ Scan(...any) error }) (*domain.Role, error) {
	role := &domain.Role{}
	err := row.Scan(&role.ID, &role.OrganizationID, &role.Name, &role.Description, &role.RoleType,
		&role.IsSystemRole, &role.IsDefaultRole, &role.Priority, pq.Array(&role.Permissions),
		&role.Color, &role.Icon, &role.CreatedOn, &role.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return role, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int32) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1`
	return scanRole(r.db.QueryRowContext(ctx, query, id))
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	query := `UPDATE roles SET name=$1, description=$2, is_default_role=$3, priority=$4,
	          permissions=$5, color=$6, icon=$7, updated_on=$8 WHERE id=$9`
	role.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query, role.Name, role.Description, role.IsDefaultRole,
		role.Priority, pq.Array(role.Permissions), role.Color, role.Icon, role.UpdatedOn, role.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *roleRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE organization_id = $1 ORDER BY priority DESC, id`
	return r.queryRoles(ctx, query, orgID)
}

func (r *roleRepository) ListSystemRoles(ctx context.Context) ([]domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE role_type = $1 ORDER BY id`
	return r.queryRoles(ctx, query, domain.RoleTypeSystem)
}

func (r *roleRepository) GetDefaultRole(ctx context.Context, orgID int32) (*domain.Role, error) {
	// Default-role uniqueness is not constrained; the newest default wins.
	query := `SELECT ` + roleColumns + ` FROM roles
	          WHERE organization_id = $1 AND is_default_role ORDER BY updated_on DESC LIMIT 1`
	return scanRole(r.db.QueryRowContext(ctx, query, orgID))
}

// CreateSystemRoleIfAbsent is the bootstrap compare-and-create. Existence is
// decided by role-type membership, not name: at most one system role per
// default flag can ever be inserted, even under concurrent bootstraps.
func (r *roleRepository) CreateSystemRoleIfAbsent(ctx context.Context, role *domain.Role) (bool, error) {
	query := `INSERT INTO roles (organization_id, name, description, role_type, is_system_role,
	          is_default_role, priority, permissions, color, icon, created_on, updated_on)
	          SELECT NULL, $1, $2, $3, TRUE, $4, $5, $6, $7, $8, $9, $9
	          WHERE NOT EXISTS (
	              SELECT 1 FROM roles WHERE role_type = $3 AND is_default_role = $4
	          )
	          RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		role.Name, role.Description, domain.RoleTypeSystem, role.IsDefaultRole,
		role.Priority, pq.Array(role.Permissions), role.Color, role.Icon, now,
	).Scan(&role.ID)
	if err != nil {
		if mapped := mapError(err); mapped == repository.ErrNotFound || mapped == repository.ErrDuplicate {
			// No row returned: a matching system role already exists.
			return false, nil
		}
		return false, err
	}
	role.OrganizationID = nil
	role.RoleType = domain.RoleTypeSystem
	role.IsSystemRole = true
	role.CreatedOn = now
	role.UpdatedOn = now
	return true, nil
}

func (r *roleRepository) queryRoles(ctx context.Context, query string, args ...any) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}
