package service

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockOrgRepo
type MockOrgRepo struct {
	mock.Mock
}

func (m *MockOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) IncrementUsage(ctx context.Context, orgID int32, resource string) (bool, error) {
	args := m.Called(ctx, orgID, resource)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrgRepo) DecrementUsage(ctx context.Context, orgID int32, resource string) error {
	args := m.Called(ctx, orgID, resource)
	return args.Error(0)
}

// MockAgencyRepo
type MockAgencyRepo struct {
	mock.Mock
}

func (m *MockAgencyRepo) Create(ctx context.Context, agency *domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}
func (m *MockAgencyRepo) GetByID(ctx context.Context, id int32) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}
func (m *MockAgencyRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Agency, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Agency), args.Error(1)
}
func (m *MockAgencyRepo) Update(ctx context.Context, agency *domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}
func (m *MockAgencyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoleRepo
type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockRoleRepo) GetByID(ctx context.Context, id int32) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockRoleRepo) Update(ctx context.Context, role *domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockRoleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoleRepo) ListByOrganization(ctx context.Context, orgID int32) ([]domain.Role, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Role), args.Error(1)
}
func (m *MockRoleRepo) ListSystemRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Role), args.Error(1)
}
func (m *MockRoleRepo) GetDefaultRole(ctx context.Context, orgID int32) (*domain.Role, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockRoleRepo) CreateSystemRoleIfAbsent(ctx context.Context, role *domain.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

// MockUserRoleRepo
type MockUserRoleRepo struct {
	mock.Mock
}

func (m *MockUserRoleRepo) Create(ctx context.Context, grant *domain.UserRole) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}
func (m *MockUserRoleRepo) GetByID(ctx context.Context, id int32) (*domain.UserRole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRole), args.Error(1)
}
func (m *MockUserRoleRepo) Revoke(ctx context.Context, id int32, revokedBy int32, revokedOn time.Time) error {
	args := m.Called(ctx, id, revokedBy, revokedOn)
	return args.Error(0)
}
func (m *MockUserRoleRepo) ListByUser(ctx context.Context, userID int32) ([]domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.UserRole), args.Error(1)
}
func (m *MockUserRoleRepo) ListEffectiveByUser(ctx context.Context, userID int32, now time.Time) ([]domain.UserRole, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).([]domain.UserRole), args.Error(1)
}
func (m *MockUserRoleRepo) DeleteByUser(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRoleRepo) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanRepo
type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *domain.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockPlanRepo) GetByID(ctx context.Context, id int32) (*domain.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionPlan), args.Error(1)
}
func (m *MockPlanRepo) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SubscriptionPlan), args.Error(1)
}
func (m *MockPlanRepo) ListActive(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SubscriptionPlan), args.Error(1)
}
func (m *MockPlanRepo) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockSubscriptionRepo
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *domain.OrganizationSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) GetByID(ctx context.Context, id int32) (*domain.OrganizationSubscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationSubscription), args.Error(1)
}
func (m *MockSubscriptionRepo) GetActiveByOrganization(ctx context.Context, orgID int32) (*domain.OrganizationSubscription, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationSubscription), args.Error(1)
}
func (m *MockSubscriptionRepo) Update(ctx context.Context, sub *domain.OrganizationSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) ListExpiring(ctx context.Context, before time.Time) ([]domain.OrganizationSubscription, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.OrganizationSubscription), args.Error(1)
}
func (m *MockSubscriptionRepo) MarkExpiredDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockOnboardingRepo
type MockOnboardingRepo struct {
	mock.Mock
}

func (m *MockOnboardingRepo) Create(ctx context.Context, session *domain.OnboardingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockOnboardingRepo) GetByID(ctx context.Context, id int32) (*domain.OnboardingSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingSession), args.Error(1)
}
func (m *MockOnboardingRepo) GetByToken(ctx context.Context, token string) (*domain.OnboardingSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingSession), args.Error(1)
}
func (m *MockOnboardingRepo) UpdateWithVersion(ctx context.Context, session *domain.OnboardingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockOnboardingRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email, name, orgName string) error {
	args := m.Called(ctx, email, name, orgName)
	return args.Error(0)
}
func (m *MockEmailService) SendSubscriptionExpiryReminder(ctx context.Context, email, orgName string, expiresOn time.Time) error {
	args := m.Called(ctx, email, orgName, expiresOn)
	return args.Error(0)
}
