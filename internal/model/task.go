package model

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// IsValid checks whether the status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Toggled returns the status a checkbox click moves the task to.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskDone {
		return TaskTodo
	}
	return TaskDone
}

// Task is a to-do item attached to an event.
type Task struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    string     `json:"priority,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     Timestamp  `json:"due_date"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   Timestamp  `json:"updated_at"`
}
