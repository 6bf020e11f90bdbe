package service

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type orgService struct {
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &orgService{orgRepo: orgRepo}
}

func (s *orgService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *orgService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *orgService) UpdateOrganization(ctx context.Context, org *domain.Organization) error {
	return s.orgRepo.Update(ctx, org)
}

func (s *orgService) SetActive(ctx context.Context, orgID int32, active bool) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	org.IsActive = active
	return s.orgRepo.Update(ctx, org)
}
