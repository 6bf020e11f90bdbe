package service

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.User, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type UserService interface {
	CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Organization, []domain.UserRole, error)
	UpdateProfile(ctx context.Context, userID int32, firstName, lastName, phone string) error
	SetActive(ctx context.Context, actorID, userID int32, active bool) error
}

type RoleService interface {
	BootstrapSystemRoles(ctx context.Context) error
	CreateRole(ctx context.Context, name string, orgID *int32, permissions []string, roleType domain.RoleType) (*domain.Role, error)
	GetRole(ctx context.Context, id int32) (*domain.Role, error)
	ListRoles(ctx context.Context, orgID int32) ([]domain.Role, error)
	AssignPermissions(ctx context.Context, actor *domain.User, roleID int32, codes []string) (*domain.Role, error)
	DeleteRole(ctx context.Context, actor *domain.User, roleID int32) error

	Grant(ctx context.Context, userID, roleID int32, orgID, agencyID *int32, expiresOn *time.Time, grantedBy int32) (*domain.UserRole, error)
	Revoke(ctx context.Context, assignmentID, revokedBy int32) error
	ListEffective(ctx context.Context, userID int32) ([]domain.UserRole, error)
}

type TenantService interface {
	ResolveFilter(ctx context.Context, userID int32) (domain.TenantFilter, error)
	EffectivePermissions(ctx context.Context, userID int32) ([]string, error)
	CanAccessOrganization(ctx context.Context, userID, orgID int32) (bool, error)
	CanAccessAgency(ctx context.Context, userID, agencyID int32) (bool, error)
}

type OnboardingService interface {
	CreateSession(ctx context.Context) (*domain.OnboardingSession, error)
	GetSession(ctx context.Context, token string) (*domain.OnboardingSession, error)
	SaveOwnerInfo(ctx context.Context, token string, info *domain.OnboardingOwnerInfo) (*domain.OnboardingSession, error)
	SaveOrganizationInfo(ctx context.Context, token string, info *domain.OnboardingOrgInfo) (*domain.OnboardingSession, error)
	Complete(ctx context.Context, token string, info *domain.OnboardingSubscriptionInfo) (*OnboardingResult, error)
}

// OnboardingResult reports the tenant provisioned by a completed session.
type OnboardingResult struct {
	Session      *domain.OnboardingSession
	Organization *domain.Organization
	Owner        *domain.User
	DefaultRole  *domain.Role
	Subscription *domain.OrganizationSubscription
}

type OrganizationService interface {
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, org *domain.Organization) error
	SetActive(ctx context.Context, orgID int32, active bool) error
}

type AgencyService interface {
	CreateAgency(ctx context.Context, agency *domain.Agency) (*domain.Agency, error)
	GetAgency(ctx context.Context, id int32) (*domain.Agency, error)
	ListAgencies(ctx context.Context, orgID int32) ([]domain.Agency, error)
	UpdateAgency(ctx context.Context, agency *domain.Agency) error
	DeleteAgency(ctx context.Context, id int32) error
}

type DriverService interface {
	CreateDriver(ctx context.Context, driver *domain.Driver) (*domain.Driver, error)
	GetDriver(ctx context.Context, id int32) (*domain.Driver, error)
	ListDrivers(ctx context.Context, orgID int32) ([]domain.Driver, error)
	UpdateDriver(ctx context.Context, driver *domain.Driver) error
	DeleteDriver(ctx context.Context, id int32) error
}

type PlanService interface {
	CreatePlan(ctx context.Context, actor *domain.User, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id int32) (*domain.SubscriptionPlan, error)
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, actor *domain.User, plan *domain.SubscriptionPlan) error
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, name, orgName string) error
	SendSubscriptionExpiryReminder(ctx context.Context, email, orgName string, expiresOn time.Time) error
}
