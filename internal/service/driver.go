package service

import (
	"context"
	"errors"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

var ErrDriverLimitReached = errors.New("organization driver limit reached")

type driverService struct {
	driverRepo repository.DriverRepository
	orgRepo    repository.OrganizationRepository
}

func NewDriverService(driverRepo repository.DriverRepository, orgRepo repository.OrganizationRepository) DriverService {
	return &driverService{driverRepo: driverRepo, orgRepo: orgRepo}
}

func (s *driverService) CreateDriver(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	ok, err := s.orgRepo.IncrementUsage(ctx, driver.OrganizationID, "driver")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDriverLimitReached
	}

	driver.IsActive = true
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if decErr := s.orgRepo.DecrementUsage(ctx, driver.OrganizationID, "driver"); decErr != nil {
			return nil, fmt.Errorf("failed to release driver slot: %v: %w", decErr, err)
		}
		return nil, err
	}
	return driver, nil
}

func (s *driverService) GetDriver(ctx context.Context, id int32) (*domain.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) ListDrivers(ctx context.Context, orgID int32) ([]domain.Driver, error) {
	return s.driverRepo.ListByOrganization(ctx, orgID)
}

func (s *driverService) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	return s.driverRepo.Update(ctx, driver)
}

func (s *driverService) DeleteDriver(ctx context.Context, id int32) error {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.orgRepo.DecrementUsage(ctx, driver.OrganizationID, "driver")
}
