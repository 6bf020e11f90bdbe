package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, phone_number, password_hash, first_name, last_name, user_type,
	organization_id, agency_id, is_active, is_email_verified, created_on, updated_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, first_name, last_name, user_type,
	          organization_id, agency_id, is_active, is_email_verified, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PhoneNumber, u.PasswordHash, u.FirstName, u.LastName, u.UserType,
		u.OrganizationID, u.AgencyID, u.IsActive, u.IsEmailVerified, u.CreatedOn, u.UpdatedOn,
	).Scan(&u.ID)
	return mapError(err)
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.UserType, &u.OrganizationID, &u.AgencyID, &u.IsActive, &u.IsEmailVerified,
		&u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, mapError(err)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, phone_number=$2, first_name=$3, last_name=$4, user_type=$5,
	          organization_id=$6, agency_id=$7, is_active=$8, is_email_verified=$9, updated_on=$10
	          WHERE id=$11`
	u.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx, query,
		u.Email, u.PhoneNumber, u.FirstName, u.LastName, u.UserType,
		u.OrganizationID, u.AgencyID, u.IsActive, u.IsEmailVerified, u.UpdatedOn, u.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByOrganization(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
