package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

const driverColumns = `id, organization_id, agency_id, user_id, first_name, last_name,
	license_number, license_expires, is_active, created_on, updated_on`

func (r *driverRepository) Create(ctx context.Context, d *domain.Driver) error {
	query := `INSERT INTO drivers (organization_id, agency_id, user_id, first_name, last_name,
	          license_number, license_expires, is_active, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`
	now := time.Now()
	d.CreatedOn = now
	d.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		d.OrganizationID, d.AgencyID, d.UserID, d.FirstName, d.LastName,
		d.LicenseNumber, d.LicenseExpires, d.IsActive, d.CreatedOn, d.UpdatedOn,
	).Scan(&d.ID)
	return mapError(err)
}

func scanDriver(row interface{ Scan(...any) error }) (*domain.Driver, error) {
	d := &domain.Driver{}
	err := row.Scan(&d.ID, &d.OrganizationID, &d.AgencyID, &d.UserID, &d.FirstName, &d.LastName,
		&d.LicenseNumber, &d.LicenseExpires, &d.IsActive, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *driverRepository) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return scanDriver(r.db.QueryRowContext(ctx, query, id))
}

func (r *driverRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE organization_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, *d)
	}
	return drivers, rows.Err()
}

func (r *driverRepository) Update(ctx context.Context, d *domain.Driver) error {
	query := `UPDATE drivers SET agency_id=$1, first_name=$2, last_name=$3, license_number=$4,
	          license_expires=$5, is_active=$6, updated_on=$7 WHERE id=$8`
	d.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query, d.AgencyID, d.FirstName, d.LastName, d.LicenseNumber,
		d.LicenseExpires, d.IsActive, d.UpdatedOn, d.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
