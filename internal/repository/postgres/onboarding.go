package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type onboardingRepository struct {
	db *sql.DB
}

func NewOnboardingRepository(db *sql.DB) repository.OnboardingRepository {
	return &onboardingRepository{db: db}
}

const onboardingColumns = `id, session_token, current_step, max_step, is_completed, version,
	expires_on, completed_on, owner_info, org_info,
	created_organization_id, created_owner_user_id, created_role_id, created_subscription_id,
	created_on, updated_on`

func (r *onboardingRepository) Create(ctx context.Context, s *domain.OnboardingSession) error {
	query := `INSERT INTO onboarding_sessions (session_token, current_step, max_step, is_completed,
	          version, expires_on, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$7) RETURNING id`
	now := time.Now()
	s.CreatedOn = now
	s.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		s.SessionToken, s.CurrentStep, s.MaxStep, s.IsCompleted, s.Version, s.ExpiresOn, now,
	).Scan(&s.ID)
	return mapError(err)
}

func scanSession(row interface{ Scan(...any) error }) (*domain.OnboardingSession, error) {
	s := &domain.OnboardingSession{}
	var ownerInfo, orgInfo []byte
	err := row.Scan(&s.ID, &s.SessionToken, &s.CurrentStep, &s.MaxStep, &s.IsCompleted, &s.Version,
		&s.ExpiresOn, &s.CompletedOn, &ownerInfo, &orgInfo,
		&s.CreatedOrganizationID, &s.CreatedOwnerUserID, &s.CreatedRoleID, &s.CreatedSubscriptionID,
		&s.CreatedOn, &s.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	if len(ownerInfo) > 0 {
		if err := json.Unmarshal(ownerInfo, &s.OwnerInfo); err != nil {
			return nil, err
		}
	}
	if len(orgInfo) > 0 {
		if err := json.Unmarshal(orgInfo, &s.OrgInfo); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *onboardingRepository) GetByID(ctx context.Context, id int32) (*domain.OnboardingSession, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_sessions WHERE id = $1`
	return scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *onboardingRepository) GetByToken(ctx context.Context, token string) (*domain.OnboardingSession, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_sessions WHERE session_token = $1`
	return scanSession(r.db.QueryRowContext(ctx, query, token))
}

// UpdateWithVersion is the single write path for session state. The WHERE
// clause pins the version the caller read; a lost race affects zero rows and
// surfaces as ErrVersionConflict.
func (r *onboardingRepository) UpdateWithVersion(ctx context.Context, s *domain.OnboardingSession) error {
	ownerInfo, err := marshalNullable(s.OwnerInfo)
	if err != nil {
		return err
	}
	orgInfo, err := marshalNullable(s.OrgInfo)
	if err != nil {
		return err
	}
	query := `UPDATE onboarding_sessions SET
	          current_step=$1, is_completed=$2, completed_on=$3, owner_info=$4, org_info=$5,
	          created_organization_id=$6, created_owner_user_id=$7, created_role_id=$8,
	          created_subscription_id=$9, version=version+1, updated_on=$10
	          WHERE id=$11 AND version=$12`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query,
		s.CurrentStep, s.IsCompleted, s.CompletedOn, ownerInfo, orgInfo,
		s.CreatedOrganizationID, s.CreatedOwnerUserID, s.CreatedRoleID, s.CreatedSubscriptionID,
		now, s.ID, s.Version)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrVersionConflict
	}
	s.Version++
	s.UpdatedOn = now
	return nil
}

func (r *onboardingRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM onboarding_sessions WHERE NOT is_completed AND expires_on < $1`, now)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}

func marshalNullable(v any) ([]byte, error) {
	switch x := v.(type) {
	case *domain.OnboardingOwnerInfo:
		if x == nil {
			return nil, nil
		}
	case *domain.OnboardingOrgInfo:
		if x == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
