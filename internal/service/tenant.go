package service

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type tenantService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	grantRepo  repository.UserRoleRepository
	agencyRepo repository.AgencyRepository
	now        func() time.Time
}

func NewTenantService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	grantRepo repository.UserRoleRepository,
	agencyRepo repository.AgencyRepository,
) TenantService {
	return &tenantService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		grantRepo:  grantRepo,
		agencyRepo: agencyRepo,
		now:        time.Now,
	}
}

// ResolveFilter derives the ground-truth tenant scope for an actor. A
// SUPER_ADMIN is always global, regardless of its own organization or agency
// fields. Everyone else is narrowed to their organization, and additionally to
// their agency when their user type is agency-bound and an agency is set.
func (s *tenantService) ResolveFilter(ctx context.Context, userID int32) (domain.TenantFilter, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.TenantFilter{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	return ResolveFilterForUser(user), nil
}

// ResolveFilterForUser is the pure filter derivation; it exists so request
// pipelines that already loaded the user avoid a second lookup.
func ResolveFilterForUser(user *domain.User) domain.TenantFilter {
	if user.UserType.IsSystemAdmin() {
		return domain.TenantFilter{IsGlobalAccess: true}
	}
	filter := domain.TenantFilter{OrganizationID: user.OrganizationID}
	if agencyRestricted(user.UserType) && user.AgencyID != nil {
		filter.AgencyID = user.AgencyID
		filter.IsAgencyRestricted = true
	}
	return filter
}

// Only these two variants are narrowed to an agency; other agency-attached
// users still see their whole organization.
func agencyRestricted(t domain.UserType) bool {
	return t == domain.UserTypeAgencyManager || t == domain.UserTypeRentalAgent
}

// EffectivePermissions unions the permission sets of every active, non-expired
// role assignment the user holds.
func (s *tenantService) EffectivePermissions(ctx context.Context, userID int32) ([]string, error) {
	grants, err := s.grantRepo.ListEffectiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var perms []string
	for _, g := range grants {
		role, err := s.roleRepo.GetByID(ctx, g.RoleID)
		if err != nil {
			if err == repository.ErrNotFound {
				continue
			}
			return nil, err
		}
		for _, code := range role.Permissions {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			perms = append(perms, code)
		}
	}
	return perms, nil
}

func (s *tenantService) CanAccessOrganization(ctx context.Context, userID, orgID int32) (bool, error) {
	filter, err := s.ResolveFilter(ctx, userID)
	if err != nil {
		return false, err
	}
	return filter.AllowsOrganization(orgID), nil
}

func (s *tenantService) CanAccessAgency(ctx context.Context, userID, agencyID int32) (bool, error) {
	filter, err := s.ResolveFilter(ctx, userID)
	if err != nil {
		return false, err
	}
	if filter.IsGlobalAccess {
		return true, nil
	}
	if filter.IsAgencyRestricted {
		return filter.AgencyID != nil && *filter.AgencyID == agencyID, nil
	}
	// Organization-scoped actors reach any agency their organization owns.
	agency, err := s.agencyRepo.GetByID(ctx, agencyID)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return filter.AllowsOrganization(agency.OrganizationID), nil
}
