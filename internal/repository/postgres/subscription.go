package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, organization_id, plan_id, starts_on, expires_on, auto_renew, status, created_on`

func (r *subscriptionRepository) Create(ctx context.Context, s *domain.OrganizationSubscription) error {
	query := `INSERT INTO organization_subscriptions (organization_id, plan_id, starts_on, expires_on,
	          auto_renew, status, created_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`
	s.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query,
		s.OrganizationID, s.PlanID, s.StartsOn, s.ExpiresOn, s.AutoRenew, s.Status, s.CreatedOn,
	).Scan(&s.ID)
	return mapError(err)
}

func scanSubscription(row interface{ Scan(...any) error }) (*domain.OrganizationSubscription, error) {
	s := &domain.OrganizationSubscription{}
	err := row.Scan(&s.ID, &s.OrganizationID, &s.PlanID, &s.StartsOn, &s.ExpiresOn,
		&s.AutoRenew, &s.Status, &s.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int32) (*domain.OrganizationSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM organization_subscriptions WHERE id = $1`
	return scanSubscription(r.db.QueryRowContext(ctx, query, id))
}

func (r *subscriptionRepository) GetActiveByOrganization(ctx context.Context, orgID int32) (*domain.OrganizationSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM organization_subscriptions
	          WHERE organization_id = $1 AND status = $2 ORDER BY expires_on DESC LIMIT 1`
	return scanSubscription(r.db.QueryRowContext(ctx, query, orgID, domain.SubscriptionStatusActive))
}

func (r *subscriptionRepository) Update(ctx context.Context, s *domain.OrganizationSubscription) error {
	query := `UPDATE organization_subscriptions SET expires_on=$1, auto_renew=$2, status=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, s.ExpiresOn, s.AutoRenew, s.Status, s.ID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *subscriptionRepository) ListExpiring(ctx context.Context, before time.Time) ([]domain.OrganizationSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM organization_subscriptions
	          WHERE status = $1 AND expires_on < $2 ORDER BY expires_on`
	rows, err := r.db.QueryContext(ctx, query, domain.SubscriptionStatusActive, before)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []domain.OrganizationSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func (r *subscriptionRepository) MarkExpiredDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE organization_subscriptions SET status = $1
	          WHERE status = $2 AND expires_on < $3 AND NOT auto_renew`
	res, err := r.db.ExecContext(ctx, query, domain.SubscriptionStatusExpired, domain.SubscriptionStatusActive, now)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}
