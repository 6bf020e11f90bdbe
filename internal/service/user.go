package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCannotManageUser = errors.New("actor cannot manage users of this type")
	ErrUserLimitReached = errors.New("organization user limit reached")
	ErrInvalidUserType  = errors.New("unknown user type")
	ErrAgencyRequired   = errors.New("user type requires an agency")
)

type userService struct {
	userRepo  repository.UserRepository
	orgRepo   repository.OrganizationRepository
	grantRepo repository.UserRoleRepository
	now       func() time.Time
}

func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, grantRepo repository.UserRoleRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		grantRepo: grantRepo,
		now:       time.Now,
	}
}

// CreateUser provisions a user on behalf of an actor. The actor must be able
// to manage the new user's type, and the organization's user counter is
// claimed atomically before the insert so concurrent creations cannot exceed
// the limit.
func (s *userService) CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) (*domain.User, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !user.UserType.IsValid() {
		return nil, ErrInvalidUserType
	}
	if !actor.UserType.CanManage(user.UserType) || !actor.UserType.CanManageUsers() {
		return nil, ErrCannotManageUser
	}
	if user.UserType.RequiresAgency() && user.AgencyID == nil {
		return nil, ErrAgencyRequired
	}

	if taken, err := s.userRepo.ExistsByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.IsActive = true

	claimed := false
	if user.OrganizationID != nil {
		ok, err := s.orgRepo.IncrementUsage(ctx, *user.OrganizationID, "user")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUserLimitReached
		}
		claimed = true
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if claimed {
			if decErr := s.orgRepo.DecrementUsage(ctx, *user.OrganizationID, "user"); decErr != nil {
				return nil, fmt.Errorf("failed to release user slot: %v: %w", decErr, err)
			}
		}
		if err == repository.ErrDuplicate {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Organization, []domain.UserRole, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	var org *domain.Organization
	if user.OrganizationID != nil {
		org, err = s.orgRepo.GetByID(ctx, *user.OrganizationID)
		if err != nil && err != repository.ErrNotFound {
			return nil, nil, nil, err
		}
	}

	grants, err := s.grantRepo.ListEffectiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, nil, nil, err
	}
	return user, org, grants, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, firstName, lastName, phone string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.PhoneNumber = phone
	return s.userRepo.Update(ctx, user)
}

func (s *userService) SetActive(ctx context.Context, actorID, userID int32, active bool) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !actor.UserType.CanManage(user.UserType) {
		return ErrCannotManageUser
	}
	user.IsActive = active
	return s.userRepo.Update(ctx, user)
}
