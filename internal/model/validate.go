package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(field, msg string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) result() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

const maxTitleLen = 500

func checkTitle(ve *ValidationError, field, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		ve.add(field, "is required")
	} else if len([]rune(title)) > maxTitleLen {
		ve.add(field, fmt.Sprintf("must be %d characters or fewer", maxTitleLen))
	}
}

// ValidateTask checks the task form rules.
// An empty status is allowed and means "todo".
func ValidateTask(t *Task) error {
	var ve ValidationError
	checkTitle(&ve, "title", t.Title)
	if t.Status != "" && !t.Status.IsValid() {
		ve.add("status", fmt.Sprintf("invalid value %q", t.Status))
	}
	return ve.result()
}

// ValidateEvent checks the event form rules.
func ValidateEvent(e *Event) error {
	var ve ValidationError
	checkTitle(&ve, "title", e.Title)
	if !e.StartsAt.IsZero() && !e.EndsAt.IsZero() && e.EndsAt.Before(e.StartsAt.Time) {
		ve.add("end_date", "must not be before start_date")
	}
	return ve.result()
}

// ValidatePoll requires a question and at least two non-empty options.
func ValidatePoll(p *Poll) error {
	var ve ValidationError
	checkTitle(&ve, "question", p.Question)
	n := 0
	for _, o := range p.Options {
		if o != nil && strings.TrimSpace(o.Text) != "" {
			n++
		}
	}
	if n < 2 {
		ve.add("options", "at least two options are required")
	}
	return ve.result()
}

// ValidateBudgetItem requires a title and non-negative amounts.
func ValidateBudgetItem(b *BudgetItem) error {
	var ve ValidationError
	checkTitle(&ve, "title", b.Title)
	if b.Planned < 0 {
		ve.add("planned_amount", "must not be negative")
	}
	if b.Actual < 0 {
		ve.add("actual_amount", "must not be negative")
	}
	return ve.result()
}

// ValidateRSVP checks the RSVP status and guest count.
func ValidateRSVP(r *RSVP) error {
	var ve ValidationError
	if !r.Status.IsValid() {
		ve.add("status", fmt.Sprintf("invalid value %q", r.Status))
	}
	if r.Guests < 0 {
		ve.add("guests_count", "must not be negative")
	}
	return ve.result()
}
