package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSessionExpired   = errors.New("onboarding session has expired")
	ErrSessionCompleted = errors.New("onboarding session is already completed")
	ErrSessionNotReady  = errors.New("onboarding steps are not complete")
	ErrPlanNotActive    = errors.New("subscription plan is not active")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrOrgNameTaken     = errors.New("organization name is already registered")
)

type onboardingService struct {
	sessionRepo repository.OnboardingRepository
	userRepo    repository.UserRepository
	orgRepo     repository.OrganizationRepository
	roleRepo    repository.RoleRepository
	grantRepo   repository.UserRoleRepository
	planRepo    repository.SubscriptionPlanRepository
	subRepo     repository.SubscriptionRepository
	emailSvc    EmailService
	sessionTTL  time.Duration
	validate    *validator.Validate
	now         func() time.Time
}

func NewOnboardingService(
	sessionRepo repository.OnboardingRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	roleRepo repository.RoleRepository,
	grantRepo repository.UserRoleRepository,
	planRepo repository.SubscriptionPlanRepository,
	subRepo repository.SubscriptionRepository,
	emailSvc EmailService,
	sessionTTL time.Duration,
) OnboardingService {
	return &onboardingService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		roleRepo:    roleRepo,
		grantRepo:   grantRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		emailSvc:    emailSvc,
		sessionTTL:  sessionTTL,
		validate:    validator.New(),
		now:         time.Now,
	}
}

func (s *onboardingService) CreateSession(ctx context.Context) (*domain.OnboardingSession, error) {
	session := &domain.OnboardingSession{
		SessionToken: uuid.NewString(),
		CurrentStep:  domain.OnboardingStepCreated,
		MaxStep:      domain.OnboardingMaxStep,
		ExpiresOn:    s.now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create onboarding session: %w", err)
	}
	return session, nil
}

func (s *onboardingService) GetSession(ctx context.Context, token string) (*domain.OnboardingSession, error) {
	return s.sessionRepo.GetByToken(ctx, token)
}

// loadOpenSession fetches the session and rejects terminal states. Expired and
// completed sessions accept no further transitions.
func (s *onboardingService) loadOpenSession(ctx context.Context, token string) (*domain.OnboardingSession, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrSessionCompleted
	}
	if session.IsExpired(s.now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

func (s *onboardingService) SaveOwnerInfo(ctx context.Context, token string, info *domain.OnboardingOwnerInfo) (*domain.OnboardingSession, error) {
	session, err := s.loadOpenSession(ctx, token)
	if err != nil {
		return nil, err
	}
	// Validation failures leave the session untouched.
	if err := s.validate.Struct(info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if taken, err := s.userRepo.ExistsByEmail(ctx, info.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	session.OwnerInfo = info
	if session.CurrentStep < domain.OnboardingStepOwnerInfo {
		session.CurrentStep = domain.OnboardingStepOwnerInfo
	}
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *onboardingService) SaveOrganizationInfo(ctx context.Context, token string, info *domain.OnboardingOrgInfo) (*domain.OnboardingSession, error) {
	session, err := s.loadOpenSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.OwnerInfo == nil {
		return nil, ErrSessionNotReady
	}
	if err := s.validate.Struct(info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if existing, err := s.orgRepo.GetByName(ctx, info.Name); err != nil && err != repository.ErrNotFound {
		return nil, err
	} else if existing != nil {
		return nil, ErrOrgNameTaken
	}

	session.OrgInfo = info
	if session.CurrentStep < domain.OnboardingStepOrgInfo {
		session.CurrentStep = domain.OnboardingStepOrgInfo
	}
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete provisions the tenant as one logical unit: organization, owner
// user, default role, owner grant, and subscription. Each sub-resource id is
// checkpointed onto the session as soon as it exists, so a retry after a
// partial failure reuses what was already created instead of duplicating it.
// The session is marked completed only by the final compare-and-swap.
func (s *onboardingService) Complete(ctx context.Context, token string, info *domain.OnboardingSubscriptionInfo) (*OnboardingResult, error) {
	session, err := s.loadOpenSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.ReadyToComplete() {
		return nil, ErrSessionNotReady
	}
	if err := s.validate.Struct(info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	plan, err := s.planRepo.GetByID(ctx, info.PlanID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrPlanNotActive
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanNotActive
	}

	owner, err := s.ensureOwner(ctx, session)
	if err != nil {
		return nil, err
	}

	org, err := s.ensureOrganization(ctx, session, plan, owner, info.AutoRenew)
	if err != nil {
		return nil, err
	}

	if err := s.attachOwner(ctx, owner, org); err != nil {
		return nil, err
	}

	role, err := s.ensureDefaultRole(ctx, session, org)
	if err != nil {
		return nil, err
	}

	if err := s.ensureOwnerGrant(ctx, owner, role, org); err != nil {
		return nil, err
	}

	sub, err := s.ensureSubscription(ctx, session, org, plan, info.AutoRenew)
	if err != nil {
		return nil, err
	}

	completedOn := s.now()
	session.IsCompleted = true
	session.CompletedOn = &completedOn
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendWelcome(ctx, owner.Email, owner.FullName(), org.Name); err != nil {
			logger.Warn("Failed to send welcome email", "error", err, "email", owner.Email)
		}
	}

	return &OnboardingResult{
		Session:      session,
		Organization: org,
		Owner:        owner,
		DefaultRole:  role,
		Subscription: sub,
	}, nil
}

func (s *onboardingService) ensureOwner(ctx context.Context, session *domain.OnboardingSession) (*domain.User, error) {
	if session.CreatedOwnerUserID != nil {
		return s.userRepo.GetByID(ctx, *session.CreatedOwnerUserID)
	}

	info := session.OwnerInfo
	// A previous partial attempt may have created the user before the
	// checkpoint landed; reuse it rather than tripping the unique constraint.
	// Only an unattached ORGANIZATION_OWNER can be that user. Any other
	// account holding the email belongs to an existing tenant and must not
	// be rewired into this one.
	if existing, err := s.userRepo.GetByEmail(ctx, info.Email); err == nil {
		if existing.UserType != domain.UserTypeOrganizationOwner || existing.OrganizationID != nil {
			return nil, ErrEmailTaken
		}
		return existing, s.checkpointOwner(ctx, session, existing.ID)
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	password := info.Password
	if password == "" {
		password = uuid.NewString()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &domain.User{
		Email:        info.Email,
		PhoneNumber:  info.Phone,
		PasswordHash: string(hash),
		FirstName:    info.FirstName,
		LastName:     info.LastName,
		UserType:     domain.UserTypeOrganizationOwner,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, owner); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create owner user: %w", err)
	}
	return owner, s.checkpointOwner(ctx, session, owner.ID)
}

func (s *onboardingService) checkpointOwner(ctx context.Context, session *domain.OnboardingSession, userID int32) error {
	session.CreatedOwnerUserID = &userID
	return s.sessionRepo.UpdateWithVersion(ctx, session)
}

// attachOwner binds the owner to the new organization. ensureOwner only ever
// yields the checkpointed owner or an unattached one, so this never rewires
// a user out of another organization. Idempotent on retry.
func (s *onboardingService) attachOwner(ctx context.Context, owner *domain.User, org *domain.Organization) error {
	if owner.OrganizationID != nil && *owner.OrganizationID == org.ID {
		return nil
	}
	owner.OrganizationID = &org.ID
	if err := s.userRepo.Update(ctx, owner); err != nil {
		return fmt.Errorf("failed to attach owner to organization: %w", err)
	}
	return nil
}

func (s *onboardingService) ensureOrganization(ctx context.Context, session *domain.OnboardingSession, plan *domain.SubscriptionPlan, owner *domain.User, autoRenew bool) (*domain.Organization, error) {
	if session.CreatedOrganizationID != nil {
		return s.orgRepo.GetByID(ctx, *session.CreatedOrganizationID)
	}

	limits := plan.Limits()
	if limits == (domain.ResourceLimits{}) {
		limits = owner.UserType.DefaultLimits()
	}

	expiresOn := s.now().AddDate(0, 0, int(plan.DurationDays))
	org := &domain.Organization{
		Name:                  session.OrgInfo.Name,
		Description:           session.OrgInfo.Description,
		Address:               session.OrgInfo.Address,
		OwnerID:               owner.ID,
		IsActive:              true,
		PlanID:                &plan.ID,
		SubscriptionExpiresOn: &expiresOn,
		AutoRenew:             autoRenew,
		CurrentUsers:          1, // the owner
		MaxAgencies:           limits.MaxAgencies,
		MaxVehicles:           limits.MaxVehicles,
		MaxDrivers:            limits.MaxDrivers,
		MaxUsers:              limits.MaxUsers,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrOrgNameTaken
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	session.CreatedOrganizationID = &org.ID
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *onboardingService) ensureDefaultRole(ctx context.Context, session *domain.OnboardingSession, org *domain.Organization) (*domain.Role, error) {
	if session.CreatedRoleID != nil {
		return s.roleRepo.GetByID(ctx, *session.CreatedRoleID)
	}

	role, err := s.roleRepo.GetDefaultRole(ctx, org.ID)
	if err == repository.ErrNotFound {
		role = &domain.Role{
			OrganizationID: &org.ID,
			Name:           domain.RoleNameDefaultClient,
			Description:    "Default organization role",
			RoleType:       domain.RoleTypePredefined,
			IsDefaultRole:  true,
			Priority:       10,
			Permissions:    domain.DefaultClientPermissions(),
		}
		if err := s.roleRepo.Create(ctx, role); err != nil {
			return nil, fmt.Errorf("failed to create default role: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	session.CreatedRoleID = &role.ID
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *onboardingService) ensureOwnerGrant(ctx context.Context, owner *domain.User, role *domain.Role, org *domain.Organization) error {
	grants, err := s.grantRepo.ListEffectiveByUser(ctx, owner.ID, s.now())
	if err != nil {
		return err
	}
	for _, g := range grants {
		if g.RoleID == role.ID && g.OrganizationID != nil && *g.OrganizationID == org.ID {
			return nil // already granted by a previous attempt
		}
	}

	grant := &domain.UserRole{
		UserID:         owner.ID,
		RoleID:         role.ID,
		OrganizationID: &org.ID,
		AssignedOn:     s.now(),
		AssignedBy:     owner.ID,
		IsActive:       true,
	}
	if err := s.grantRepo.Create(ctx, grant); err != nil {
		return fmt.Errorf("failed to grant default role to owner: %w", err)
	}
	return nil
}

func (s *onboardingService) ensureSubscription(ctx context.Context, session *domain.OnboardingSession, org *domain.Organization, plan *domain.SubscriptionPlan, autoRenew bool) (*domain.OrganizationSubscription, error) {
	if session.CreatedSubscriptionID != nil {
		return s.subRepo.GetByID(ctx, *session.CreatedSubscriptionID)
	}

	startsOn := s.now()
	sub := &domain.OrganizationSubscription{
		OrganizationID: org.ID,
		PlanID:         plan.ID,
		StartsOn:       startsOn,
		ExpiresOn:      startsOn.AddDate(0, 0, int(plan.DurationDays)),
		AutoRenew:      autoRenew,
		Status:         domain.SubscriptionStatusActive,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	session.CreatedSubscriptionID = &sub.ID
	if err := s.sessionRepo.UpdateWithVersion(ctx, session); err != nil {
		return nil, err
	}
	return sub, nil
}
