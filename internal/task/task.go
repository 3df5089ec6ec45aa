// Package task defines the to-do item record and its validation rules.
package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the on-screen and on-disk form of a deadline.
const DateLayout = "2006-01-02"

// NoneLabel renders an absent priority or deadline.
const NoneLabel = "None"

// Priority ranks a task. The zero value means no priority.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// String returns the display label of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return NoneLabel
	}
}

// IsSet reports whether a priority is present.
func (p Priority) IsSet() bool {
	return p != PriorityNone
}

// Task is a single to-do item.
type Task struct {
	Description string
	Done        bool
	Priority    Priority  `validate:"min=0,max=3"`
	Deadline    time.Time `validate:"calendardate"`
}

// taskValidate is the validator instance for Task fields.
var taskValidate *validator.Validate

func init() {
	taskValidate = validator.New()
	_ = taskValidate.RegisterValidation("calendardate", validateCalendarDate)
}

// Deadlines must fit the four-digit year of DateLayout to survive a save.
const (
	MinYear = 1
	MaxYear = 9999
)

// validateCalendarDate accepts the zero time (no deadline) and any time
// without a clock component whose year is in [MinYear, MaxYear].
func validateCalendarDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	if y := t.Year(); y < MinYear || y > MaxYear {
		return false
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// New builds a validated task. It does not reject an empty description;
// the manager enforces that before insertion.
func New(description string, done bool, priority Priority, deadline time.Time) (Task, error) {
	t := Task{
		Description: description,
		Done:        done,
		Priority:    priority,
		Deadline:    deadline,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	t.Deadline = normalizeDate(t.Deadline)
	return t, nil
}

// Validate checks the priority range and the deadline shape.
func (t Task) Validate() error {
	err := taskValidate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Err: err}
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Priority":
		return &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be between 1 and 3, got %d", t.Priority),
		}
	case "Deadline":
		return &ValidationError{
			Field: "deadline",
			Err:   fmt.Errorf("must be a calendar date in years %d-%d, got %s", MinYear, MaxYear, t.Deadline.Format(time.RFC3339Nano)),
		}
	default:
		return &ValidationError{
			Field: strings.ToLower(fe.Field()),
			Err:   fmt.Errorf("failed %q rule", fe.Tag()),
		}
	}
}

// MarkAsDone flags the task complete. Calling it again has no effect.
func (t *Task) MarkAsDone() {
	t.Done = true
}

// HasDeadline reports whether a deadline is set. The zero time is "no
// deadline", so Date(1, 1, 1) cannot be used as one.
func (t Task) HasDeadline() bool {
	return !t.Deadline.IsZero()
}

// DeadlineString returns the deadline as YYYY-MM-DD, or "None".
func (t Task) DeadlineString() string {
	if !t.HasDeadline() {
		return NoneLabel
	}
	return t.Deadline.Format(DateLayout)
}

// Overdue reports whether an open task's deadline is before day.
func (t Task) Overdue(day time.Time) bool {
	if t.Done || !t.HasDeadline() {
		return false
	}
	return t.Deadline.Before(normalizeDate(day))
}

// String renders the task on one line.
func (t Task) String() string {
	mark := " "
	if t.Done {
		mark = "X"
	}
	return fmt.Sprintf("[%s] %s | Priority: %s | Deadline: %s",
		mark, t.Description, t.Priority, t.DeadlineString())
}

// Equal compares all four fields. Values other than Task or *Task never
// compare equal.
func (t Task) Equal(other any) bool {
	var o Task
	switch v := other.(type) {
	case Task:
		o = v
	case *Task:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	return t.Description == o.Description &&
		t.Done == o.Done &&
		t.Priority == o.Priority &&
		t.Deadline.Equal(o.Deadline)
}

// Date returns the calendar date y-m-d at midnight UTC. Date(1, 1, 1) is
// the zero time and reads as no deadline.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date. "None" and the empty string yield the
// zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneLabel {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &TypeError{Param: "deadline", Value: s, Want: "a YYYY-MM-DD date"}
	}
	return d, nil
}

// ParsePriority parses a priority number. "None" and the empty string yield
// PriorityNone. Non-numbers are type errors; numbers outside 1-3 are
// validation errors.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneLabel {
		return PriorityNone, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return PriorityNone, &TypeError{Param: "priority", Value: s, Want: "an integer"}
	}
	if n < int(PriorityHigh) || n > int(PriorityLow) {
		return PriorityNone, &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be between 1 and 3, got %d", n),
		}
	}
	return Priority(n), nil
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}
