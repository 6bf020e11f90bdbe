package repository

import (
	"context"
	"errors"
	"time"

	"fleetrent-backend/internal/domain"
)

// Storage-level errors surfaced by every implementation. Anything else is a
// transient storage failure the caller reports as internal.
var (
	ErrNotFound        = errors.New("repository: not found")
	ErrDuplicate       = errors.New("repository: duplicate")
	ErrVersionConflict = errors.New("repository: version conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetByName(ctx context.Context, name string) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	List(ctx context.Context) ([]domain.Organization, error)

	// IncrementUsage atomically bumps a usage counter only while it is below
	// its limit; it reports false when the organization is at capacity.
	IncrementUsage(ctx context.Context, orgID int32, resource string) (bool, error)
	DecrementUsage(ctx context.Context, orgID int32, resource string) error
}

type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	GetByID(ctx context.Context, id int32) (*domain.Agency, error)
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.Agency, error)
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id int32) error
}

type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	GetByID(ctx context.Context, id int32) (*domain.Driver, error)
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.Driver, error)
	Update(ctx context.Context, driver *domain.Driver) error
	Delete(ctx context.Context, id int32) error
}

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id int32) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id int32) error
	ListByOrganization(ctx context.Context, orgID int32) ([]domain.Role, error)
	ListSystemRoles(ctx context.Context) ([]domain.Role, error)
	GetDefaultRole(ctx context.Context, orgID int32) (*domain.Role, error)

	// CreateSystemRoleIfAbsent inserts the role only if no system role with
	// the same default flag exists yet, in a single atomic statement. It
	// reports whether a row was inserted. Safe to race across processes.
	CreateSystemRoleIfAbsent(ctx context.Context, role *domain.Role) (bool, error)
}

type UserRoleRepository interface {
	Create(ctx context.Context, grant *domain.UserRole) error
	GetByID(ctx context.Context, id int32) (*domain.UserRole, error)
	Revoke(ctx context.Context, id int32, revokedBy int32, revokedOn time.Time) error
	ListByUser(ctx context.Context, userID int32) ([]domain.UserRole, error)
	ListEffectiveByUser(ctx context.Context, userID int32, now time.Time) ([]domain.UserRole, error)
	DeleteByUser(ctx context.Context, userID int32) error
	DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *domain.SubscriptionPlan) error
	GetByID(ctx context.Context, id int32) (*domain.SubscriptionPlan, error)
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	ListActive(ctx context.Context) ([]domain.SubscriptionPlan, error)
	Update(ctx context.Context, plan *domain.SubscriptionPlan) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.OrganizationSubscription) error
	GetByID(ctx context.Context, id int32) (*domain.OrganizationSubscription, error)
	GetActiveByOrganization(ctx context.Context, orgID int32) (*domain.OrganizationSubscription, error)
	Update(ctx context.Context, sub *domain.OrganizationSubscription) error
	ListExpiring(ctx context.Context, before time.Time) ([]domain.OrganizationSubscription, error)
	MarkExpiredDue(ctx context.Context, now time.Time) (int64, error)
}

type OnboardingRepository interface {
	Create(ctx context.Context, session *domain.OnboardingSession) error
	GetByID(ctx context.Context, id int32) (*domain.OnboardingSession, error)
	GetByToken(ctx context.Context, token string) (*domain.OnboardingSession, error)

	// UpdateWithVersion applies the session's state with a compare-and-swap on
	// its version column, bumping the version on success. A concurrent writer
	// losing the race gets ErrVersionConflict and no change.
	UpdateWithVersion(ctx context.Context, session *domain.OnboardingSession) error

	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
