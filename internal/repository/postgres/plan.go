package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type subscriptionPlanRepository struct {
	db *sql.DB
}

func NewSubscriptionPlanRepository(db *sql.DB) repository.SubscriptionPlanRepository {
	return &subscriptionPlanRepository{db: db}
}

const planColumns = `id, name, description, price_cents, currency, duration_days,
	max_agencies, max_vehicles, max_drivers, max_users, features, is_active, is_popular, created_on`

func (r *subscriptionPlanRepository) Create(ctx context.Context, p *domain.SubscriptionPlan) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	query := `INSERT INTO subscription_plans (name, description, price_cents, currency, duration_days,
	          max_agencies, max_vehicles, max_drivers, max_users, features, is_active, is_popular, created_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING id`
	p.CreatedOn = time.Now()
	err = r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.PriceCents, p.Currency, p.DurationDays,
		p.MaxAgencies, p.MaxVehicles, p.MaxDrivers, p.MaxUsers, features, p.IsActive, p.IsPopular, p.CreatedOn,
	).Scan(&p.ID)
	return mapError(err)
}

func scanPlan(row interface{ Scan(...any) error }) (*domain.SubscriptionPlan, error) {
	p := &domain.SubscriptionPlan{}
	var features []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.DurationDays,
		&p.MaxAgencies, &p.MaxVehicles, &p.MaxDrivers, &p.MaxUsers, &features,
		&p.IsActive, &p.IsPopular, &p.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *subscriptionPlanRepository) GetByID(ctx context.Context, id int32) (*domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	return scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *subscriptionPlanRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY price_cents`
	return r.queryPlans(ctx, query)
}

func (r *subscriptionPlanRepository) ListActive(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE is_active ORDER BY price_cents`
	return r.queryPlans(ctx, query)
}

func (r *subscriptionPlanRepository) Update(ctx context.Context, p *domain.SubscriptionPlan) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	query := `UPDATE subscription_plans SET name=$1, description=$2, price_cents=$3, currency=$4,
	          duration_days=$5, max_agencies=$6, max_vehicles=$7, max_drivers=$8, max_users=$9,
	          features=$10, is_active=$11, is_popular=$12 WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.PriceCents, p.Currency, p.DurationDays,
		p.MaxAgencies, p.MaxVehicles, p.MaxDrivers, p.MaxUsers, features, p.IsActive, p.IsPopular, p.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *subscriptionPlanRepository) queryPlans(ctx context.Context, query string, args ...any) ([]domain.SubscriptionPlan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var plans []domain.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}
