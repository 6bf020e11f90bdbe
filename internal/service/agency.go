package service

import (
	"context"
	"errors"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

var ErrAgencyLimitReached = errors.New("organization agency limit reached")

type agencyService struct {
	agencyRepo repository.AgencyRepository
	orgRepo    repository.OrganizationRepository
}

func NewAgencyService(agencyRepo repository.AgencyRepository, orgRepo repository.OrganizationRepository) AgencyService {
	return &agencyService{agencyRepo: agencyRepo, orgRepo: orgRepo}
}

// CreateAgency claims an agency slot on the organization's counter before
// inserting, so concurrent creations cannot exceed the limit. The slot is
// released if the insert fails.
func (s *agencyService) CreateAgency(ctx context.Context, agency *domain.Agency) (*domain.Agency, error) {
	ok, err := s.orgRepo.IncrementUsage(ctx, agency.OrganizationID, "agency")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAgencyLimitReached
	}

	agency.IsActive = true
	if err := s.agencyRepo.Create(ctx, agency); err != nil {
		if decErr := s.orgRepo.DecrementUsage(ctx, agency.OrganizationID, "agency"); decErr != nil {
			return nil, fmt.Errorf("failed to release agency slot: %v: %w", decErr, err)
		}
		return nil, err
	}
	return agency, nil
}

func (s *agencyService) GetAgency(ctx context.Context, id int32) (*domain.Agency, error) {
	return s.agencyRepo.GetByID(ctx, id)
}

func (s *agencyService) ListAgencies(ctx context.Context, orgID int32) ([]domain.Agency, error) {
	return s.agencyRepo.ListByOrganization(ctx, orgID)
}

func (s *agencyService) UpdateAgency(ctx context.Context, agency *domain.Agency) error {
	return s.agencyRepo.Update(ctx, agency)
}

func (s *agencyService) DeleteAgency(ctx context.Context, id int32) error {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.agencyRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.orgRepo.DecrementUsage(ctx, agency.OrganizationID, "agency")
}
