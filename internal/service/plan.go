package service

import (
	"context"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type planService struct {
	planRepo repository.SubscriptionPlanRepository
}

func NewPlanService(planRepo repository.SubscriptionPlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// Plan curation is a system-administration concern; tenant actors only read.
func (s *planService) CreatePlan(ctx context.Context, actor *domain.User, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error) {
	if actor == nil || !actor.UserType.IsSystemAdmin() {
		return nil, ErrForbidden
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, id int32) (*domain.SubscriptionPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

func (s *planService) ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error) {
	if activeOnly {
		return s.planRepo.ListActive(ctx)
	}
	return s.planRepo.List(ctx)
}

func (s *planService) UpdatePlan(ctx context.Context, actor *domain.User, plan *domain.SubscriptionPlan) error {
	if actor == nil || !actor.UserType.IsSystemAdmin() {
		return ErrForbidden
	}
	return s.planRepo.Update(ctx, plan)
}
