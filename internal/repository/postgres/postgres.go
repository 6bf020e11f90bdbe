package postgres

import (
	"database/sql"
	"errors"

	"fleetrent-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.AgencyRepository
	repository.DriverRepository
	repository.RoleRepository
	repository.UserRoleRepository
	repository.SubscriptionPlanRepository
	repository.SubscriptionRepository
	repository.OnboardingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		UserRepository:             NewUserRepository(db),
		OrganizationRepository:     NewOrganizationRepository(db),
		AgencyRepository:           NewAgencyRepository(db),
		DriverRepository:           NewDriverRepository(db),
		RoleRepository:             NewRoleRepository(db),
		UserRoleRepository:         NewUserRoleRepository(db),
		SubscriptionPlanRepository: NewSubscriptionPlanRepository(db),
		SubscriptionRepository:     NewSubscriptionRepository(db),
		OnboardingRepository:       NewOnboardingRepository(db),
	}
}

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// mapError translates driver-level errors into the repository taxonomy.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
