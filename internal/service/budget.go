package service

import (
	"context"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

func (s *Service) ListBudgetItems(ctx context.Context, eventID string) ([]*model.BudgetItem, error) {
	return fetchList[*model.BudgetItem](ctx, s, listPath(ResBudget, byEvent(eventID)))
}

func (s *Service) CreateBudgetItem(ctx context.Context, b *model.BudgetItem) (*model.BudgetItem, error) {
	if err := model.ValidateBudgetItem(b); err != nil {
		return nil, err
	}
	created, err := write[*model.BudgetItem](ctx, s, http.MethodPost, "/"+ResBudget, b)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicBudgetChanged, created.EventID, created.ID, created)
	return created, nil
}

func (s *Service) UpdateBudgetItem(ctx context.Context, id string, fields map[string]any) (*model.BudgetItem, error) {
	updated, err := write[*model.BudgetItem](ctx, s, http.MethodPut, resourcePath(ResBudget, id), fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicBudgetChanged, updated.EventID, id, fields)
	return updated, nil
}

func (s *Service) DeleteBudgetItem(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResBudget, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicBudgetChanged, eventID, id, nil)
	return nil
}
