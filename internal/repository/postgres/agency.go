package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type agencyRepository struct {
	db *sql.DB
}

func NewAgencyRepository(db *sql.DB) repository.AgencyRepository {
	return &agencyRepository{db: db}
}

const agencyColumns = `id, organization_id, name, address, phone_number, is_active, created_on, updated_on`

func (r *agencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	query := `INSERT INTO agencies (organization_id, name, address, phone_number, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		a.OrganizationID, a.Name, a.Address, a.PhoneNumber, a.IsActive, a.CreatedOn, a.UpdatedOn,
	).Scan(&a.ID)
	return mapError(err)
}

func scanAgency(row interface{ Scan(...any) error }) (*domain.Agency, error) {
	a := &domain.Agency{}
	err := row.Scan(&a.ID, &a.OrganizationID, &a.Name, &a.Address, &a.PhoneNumber,
		&a.IsActive, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id int32) (*domain.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1`
	return scanAgency(r.db.QueryRowContext(ctx, query, id))
}

func (r *agencyRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE organization_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var agencies []domain.Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, err
		}
		agencies = append(agencies, *a)
	}
	return agencies, rows.Err()
}

func (r *agencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	query := `UPDATE agencies SET name=$1, address=$2, phone_number=$3, is_active=$4, updated_on=$5 WHERE id=$6`
	a.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Address, a.PhoneNumber, a.IsActive, a.UpdatedOn, a.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *agencyRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
