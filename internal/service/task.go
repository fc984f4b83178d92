package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

func (s *Service) ListTasks(ctx context.Context, eventID string) ([]*model.Task, error) {
	return fetchList[*model.Task](ctx, s, listPath(ResTask, byEvent(eventID)))
}

// CreateTask validates and creates a task. An assignee is notified.
func (s *Service) CreateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	if t.Status == "" {
		t.Status = model.TaskTodo
	}
	if err := model.ValidateTask(t); err != nil {
		return nil, err
	}
	created, err := write[*model.Task](ctx, s, http.MethodPost, "/"+ResTask, t)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicTaskCreated, created.EventID, created.ID, created)
	if created.AssigneeID != "" {
		s.notifyAssignee(ctx, created)
	}
	return created, nil
}

// UpdateTask applies fields to a task. Setting assignee_id notifies the new
// assignee.
func (s *Service) UpdateTask(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	if v, ok := fields["status"]; ok {
		if st := model.TaskStatus(fmt.Sprint(v)); !st.IsValid() {
			return nil, &model.ValidationError{Errors: []model.FieldError{{Field: "status", Message: fmt.Sprintf("invalid status %q", st)}}}
		}
	}
	updated, err := write[*model.Task](ctx, s, http.MethodPut, resourcePath(ResTask, id), fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicTaskUpdated, updated.EventID, id, fields)
	if a, ok := fields["assignee_id"].(string); ok && a != "" {
		s.notifyAssignee(ctx, updated)
	}
	return updated, nil
}

func (s *Service) DeleteTask(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResTask, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicTaskDeleted, eventID, id, nil)
	return nil
}

func (s *Service) notifyAssignee(ctx context.Context, t *model.Task) {
	s.notify(ctx, model.Notification{
		EventID: t.EventID,
		UserIDs: []string{t.AssigneeID},
		Title:   "New task assigned",
		Body:    t.Title,
		Type:    NotifyTaskAssigned,
	})
}
