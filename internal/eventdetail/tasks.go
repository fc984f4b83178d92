package eventdetail

import (
	"context"
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/idgen"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// TasksTab is the event's to-do list.
type TasksTab struct {
	tab
	items *optimistic.Collection[*model.Task]
}

func newTasksTab(t tab, tasks []*model.Task) *TasksTab {
	return &TasksTab{tab: t, items: newCollection(t, tasks,
		func(v *model.Task) string { return v.ID },
		func(v *model.Task, id string) { v.ID = id })}
}

func (t *TasksTab) Items() []*model.Task { return t.items.Items() }

func (t *TasksTab) Get(id string) (*model.Task, bool) { return t.items.Get(id) }

// Counts returns how many tasks are done out of the total.
func (t *TasksTab) Counts() (done, total int) {
	for _, task := range t.items.Items() {
		total++
		if task.Status == model.TaskDone {
			done++
		}
	}
	return done, total
}

// Add creates a task.
func (t *TasksTab) Add(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	task.EventID = t.eventID()
	if task.CreatedBy == "" {
		task.CreatedBy = t.page.ViewerID
	}
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	if err := model.ValidateTask(task); err != nil {
		return nil, err
	}
	return t.items.Create(ctx, task, t.page.backend.CreateTask, optimistic.Messages{})
}

// Toggle flips a task between done and not done: todo and in_progress go
// to done, done goes back to todo.
func (t *TasksTab) Toggle(ctx context.Context, id string) (*model.Task, error) {
	return t.setStatus(ctx, id, func(s model.TaskStatus) model.TaskStatus { return s.Toggled() })
}

// SetStatus moves a task to status.
func (t *TasksTab) SetStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	if !status.IsValid() {
		return nil, &model.ValidationError{Errors: []model.FieldError{{Field: "status", Message: fmt.Sprintf("invalid status %q", status)}}}
	}
	return t.setStatus(ctx, id, func(model.TaskStatus) model.TaskStatus { return status })
}

func (t *TasksTab) setStatus(ctx context.Context, id string, next func(model.TaskStatus) model.TaskStatus) (*model.Task, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	if idgen.IsTemp(id) {
		return nil, ErrPending
	}
	return t.items.Update(ctx, id,
		func(task *model.Task) *model.Task {
			task.Status = next(task.Status)
			return task
		},
		func(ctx context.Context, task *model.Task) (*model.Task, error) {
			return t.page.backend.UpdateTask(ctx, task.ID, map[string]any{"status": task.Status})
		}, optimistic.Messages{})
}

// Assign sets the task's assignee.
func (t *TasksTab) Assign(ctx context.Context, id, userID string) (*model.Task, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	if idgen.IsTemp(id) {
		return nil, ErrPending
	}
	return t.items.Update(ctx, id,
		func(task *model.Task) *model.Task {
			task.AssigneeID = userID
			return task
		},
		func(ctx context.Context, task *model.Task) (*model.Task, error) {
			return t.page.backend.UpdateTask(ctx, task.ID, map[string]any{"assignee_id": userID})
		}, optimistic.Messages{})
}

// Remove deletes a task.
func (t *TasksTab) Remove(ctx context.Context, id string) error {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return err
	}
	if idgen.IsTemp(id) {
		return ErrPending
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteTask(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}
