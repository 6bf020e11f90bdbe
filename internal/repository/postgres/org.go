package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, name, description, address, owner_id, is_active,
	plan_id, subscription_expires_on, auto_renew,
	current_agencies, current_vehicles, current_drivers, current_users,
	max_agencies, max_vehicles, max_drivers, max_users, created_on, updated_on`

// usageColumns whitelists the counter pairs addressable through
// IncrementUsage/DecrementUsage. Counter names never come from request input.
var usageColumns = map[string][2]string{
	"agency":  {"current_agencies", "max_agencies"},
	"vehicle": {"current_vehicles", "max_vehicles"},
	"driver":  {"current_drivers", "max_drivers"},
	"user":    {"current_users", "max_users"},
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO organizations (name, description, address, owner_id, is_active,
	          plan_id, subscription_expires_on, auto_renew,
	          current_agencies, current_vehicles, current_drivers, current_users,
	          max_agencies, max_vehicles, max_drivers, max_users, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18) RETURNING id`
	now := time.Now()
	o.CreatedOn = now
	o.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		o.Name, o.Description, o.Address, o.OwnerID, o.IsActive,
		o.PlanID, o.SubscriptionExpiresOn, o.AutoRenew,
		o.CurrentAgencies, o.CurrentVehicles, o.CurrentDrivers, o.CurrentUsers,
		o.MaxAgencies, o.MaxVehicles, o.MaxDrivers, o.MaxUsers, o.CreatedOn, o.UpdatedOn,
	).Scan(&o.ID)
	return mapError(err)
}

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.Address, &o.OwnerID, &o.IsActive,
		&o.PlanID, &o.SubscriptionExpiresOn, &o.AutoRenew,
		&o.CurrentAgencies, &o.CurrentVehicles, &o.CurrentDrivers, &o.CurrentUsers,
		&o.MaxAgencies, &o.MaxVehicles, &o.MaxDrivers, &o.MaxUsers, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	return scanOrganization(r.db.QueryRowContext(ctx, query, id))
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE LOWER(name) = LOWER($1)`
	return scanOrganization(r.db.QueryRowContext(ctx, query, name))
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE organizations SET name=$1, description=$2, address=$3, owner_id=$4, is_active=$5,
	          plan_id=$6, subscription_expires_on=$7, auto_renew=$8,
	          max_agencies=$9, max_vehicles=$10, max_drivers=$11, max_users=$12, updated_on=$13
	          WHERE id=$14`
	o.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query,
		o.Name, o.Description, o.Address, o.OwnerID, o.IsActive,
		o.PlanID, o.SubscriptionExpiresOn, o.AutoRenew,
		o.MaxAgencies, o.MaxVehicles, o.MaxDrivers, o.MaxUsers, o.UpdatedOn, o.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

// IncrementUsage combines the limit check and the increment in one conditional
// update so concurrent creations cannot push a counter past its limit.
func (r *organizationRepository) IncrementUsage(ctx context.Context, orgID int32, resource string) (bool, error) {
	cols, ok := usageColumns[resource]
	if !ok {
		return false, fmt.Errorf("unknown usage resource %q", resource)
	}
	query := fmt.Sprintf(
		`UPDATE organizations SET %[1]s = %[1]s + 1, updated_on = $2 WHERE id = $1 AND %[1]s < %[2]s`,
		cols[0], cols[1])
	res, err := r.db.ExecContext(ctx, query, orgID, time.Now())
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *organizationRepository) DecrementUsage(ctx context.Context, orgID int32, resource string) error {
	cols, ok := usageColumns[resource]
	if !ok {
		return fmt.Errorf("unknown usage resource %q", resource)
	}
	query := fmt.Sprintf(
		`UPDATE organizations SET %[1]s = %[1]s - 1, updated_on = $2 WHERE id = $1 AND %[1]s > 0`,
		cols[0])
	_, err := r.db.ExecContext(ctx, query, orgID, time.Now())
	return mapError(err)
}
