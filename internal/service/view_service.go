package service

import (
	"context"

	"epass-service/internal/model"
	"epass-service/internal/repository"
)

// ViewService derives read-only projections from the current pass
// collection. Nothing is cached; each call reads the store.
type ViewService struct {
	passes     *repository.PassRepository
	categories *repository.CategoryRepository
}

func NewViewService(passes *repository.PassRepository, categories *repository.CategoryRepository) *ViewService {
	return &ViewService{passes: passes, categories: categories}
}

// CitizenPasses returns the passes the citizen owns or filed under their email.
func (s *ViewService) CitizenPasses(ctx context.Context, principal model.Principal) ([]model.Pass, error) {
	user, err := requireCitizen(principal)
	if err != nil {
		return nil, err
	}
	passes, err := s.passes.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := []model.Pass{}
	for i := range passes {
		if passes[i].VisibleTo(user) {
			mine = append(mine, passes[i])
		}
	}
	return mine, nil
}

// AdminQueue returns the passes matching filter in stored order.
func (s *ViewService) AdminQueue(ctx context.Context, principal model.Principal, filter model.StatusFilter) ([]model.Pass, error) {
	if _, err := requireAdministrator(principal); err != nil {
		return nil, err
	}
	if filter == "" {
		filter = model.FilterAll
	}
	if !filter.Valid() {
		return nil, ErrInvalidFilter
	}
	passes, err := s.passes.List(ctx)
	if err != nil {
		return nil, err
	}
	queue := []model.Pass{}
	for _, p := range passes {
		if filter.Matches(p.Status) {
			queue = append(queue, p)
		}
	}
	return queue, nil
}

func (s *ViewService) Dashboard(ctx context.Context, principal model.Principal) (*model.DashboardStats, error) {
	if _, err := requireAdministrator(principal); err != nil {
		return nil, err
	}
	passes, err := s.passes.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalApplications: len(passes),
		ActiveCategories:  s.categories.CountActive(),
	}
	users := make(map[string]struct{})
	for _, p := range passes {
		switch p.Status {
		case model.StatusPending:
			stats.PendingApplications++
		case model.StatusApproved:
			stats.ApprovedApplications++
		case model.StatusRejected:
			stats.RejectedApplications++
		}
		users[p.UserID] = struct{}{}
	}
	stats.TotalUsers = len(users)
	return stats, nil
}

// PassDetail returns one pass. Citizens get ErrPassNotFound for passes they
// cannot see, so ids of other citizens' passes are not confirmed.
func (s *ViewService) PassDetail(ctx context.Context, principal model.Principal, id string) (*model.Pass, error) {
	switch p := principal.(type) {
	case model.Administrator:
		return s.passes.FindByID(ctx, id)
	case model.Citizen:
		pass, err := s.passes.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !pass.VisibleTo(&p.User) {
			return nil, repository.ErrPassNotFound
		}
		return pass, nil
	case model.Anonymous:
		return nil, ErrUnauthenticated
	}
	return nil, ErrUnauthenticated
}

// Categories lists reference categories; activeOnly restricts to those that
// may be chosen for a new application.
func (s *ViewService) Categories(activeOnly bool) []model.Category {
	if activeOnly {
		return s.categories.FindActive()
	}
	return s.categories.FindAll()
}
