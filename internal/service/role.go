package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

var (
	ErrRoleImmutable      = errors.New("system roles cannot be modified")
	ErrRoleProtected      = errors.New("system and default roles cannot be deleted")
	ErrUnknownPermission  = errors.New("unknown permission code")
	ErrSystemRoleReserved = errors.New("system roles are created at bootstrap only")
	ErrGrantExpiryInPast  = errors.New("grant expiry must be in the future")
)

type roleService struct {
	roleRepo  repository.RoleRepository
	grantRepo repository.UserRoleRepository
	now       func() time.Time
}

func NewRoleService(roleRepo repository.RoleRepository, grantRepo repository.UserRoleRepository) RoleService {
	return &roleService{
		roleRepo:  roleRepo,
		grantRepo: grantRepo,
		now:       time.Now,
	}
}

// BootstrapSystemRoles guarantees exactly one SUPER_ADMIN system role and one
// default CLIENT system role exist before the system accepts traffic. The
// check-then-create runs as one atomic statement at the storage layer, so
// concurrent bootstraps across process instances cannot duplicate either role.
func (s *roleService) BootstrapSystemRoles(ctx context.Context) error {
	log := logger.WithService("role")

	superAdmin := &domain.Role{
		Name:        domain.RoleNameSuperAdmin,
		Description: "Full platform administration",
		Priority:    100,
		Permissions: domain.AllPermissionCodes(),
	}
	created, err := s.roleRepo.CreateSystemRoleIfAbsent(ctx, superAdmin)
	if err != nil {
		return fmt.Errorf("failed to bootstrap super admin role: %w", err)
	}
	if created {
		log.Info("Created system role", "role", superAdmin.Name, "role_id", superAdmin.ID)
	}

	client := &domain.Role{
		Name:          domain.RoleNameDefaultClient,
		Description:   "Default client access",
		IsDefaultRole: true,
		Priority:      10,
		Permissions:   domain.DefaultClientPermissions(),
	}
	created, err = s.roleRepo.CreateSystemRoleIfAbsent(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to bootstrap default client role: %w", err)
	}
	if created {
		log.Info("Created system role", "role", client.Name, "role_id", client.ID)
	}

	return nil
}

func (s *roleService) CreateRole(ctx context.Context, name string, orgID *int32, permissions []string, roleType domain.RoleType) (*domain.Role, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", ErrValidation)
	}
	if roleType == domain.RoleTypeSystem {
		return nil, ErrSystemRoleReserved
	}
	if orgID == nil {
		return nil, fmt.Errorf("%w: only system roles may be organization-less", ErrValidation)
	}
	if err := validatePermissionCodes(permissions); err != nil {
		return nil, err
	}

	role := &domain.Role{
		OrganizationID: orgID,
		Name:           name,
		RoleType:       roleType,
		Permissions:    permissions,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) GetRole(ctx context.Context, id int32) (*domain.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

func (s *roleService) ListRoles(ctx context.Context, orgID int32) ([]domain.Role, error) {
	return s.roleRepo.ListByOrganization(ctx, orgID)
}

func (s *roleService) AssignPermissions(ctx context.Context, actor *domain.User, roleID int32, codes []string) (*domain.Role, error) {
	if err := validatePermissionCodes(codes); err != nil {
		return nil, err
	}
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	// Only a system admin may touch a system role's permission set.
	if !role.CanBeModified() && (actor == nil || !actor.UserType.IsSystemAdmin()) {
		return nil, ErrRoleImmutable
	}
	role.Permissions = codes
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) DeleteRole(ctx context.Context, actor *domain.User, roleID int32) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if !role.CanBeDeleted() {
		return ErrRoleProtected
	}
	if role.OrganizationID != nil && actor != nil && !actor.UserType.IsSystemAdmin() {
		if actor.OrganizationID == nil || *actor.OrganizationID != *role.OrganizationID {
			return ErrForbidden
		}
	}
	return s.roleRepo.Delete(ctx, roleID)
}

func (s *roleService) Grant(ctx context.Context, userID, roleID int32, orgID, agencyID *int32, expiresOn *time.Time, grantedBy int32) (*domain.UserRole, error) {
	if expiresOn != nil && expiresOn.Before(s.now()) {
		return nil, ErrGrantExpiryInPast
	}
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	grant := &domain.UserRole{
		UserID:         userID,
		RoleID:         roleID,
		OrganizationID: orgID,
		AgencyID:       agencyID,
		AssignedOn:     s.now(),
		AssignedBy:     grantedBy,
		ExpiresOn:      expiresOn,
		IsActive:       true,
	}
	if err := s.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *roleService) Revoke(ctx context.Context, assignmentID, revokedBy int32) error {
	return s.grantRepo.Revoke(ctx, assignmentID, revokedBy, s.now())
}

func (s *roleService) ListEffective(ctx context.Context, userID int32) ([]domain.UserRole, error) {
	return s.grantRepo.ListEffectiveByUser(ctx, userID, s.now())
}

func validatePermissionCodes(codes []string) error {
	for _, code := range codes {
		if _, ok := domain.LookupPermission(code); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPermission, code)
		}
	}
	return nil
}
