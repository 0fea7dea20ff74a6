package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

const minTitleLength = 3

const (
	ReasonTitle   = "title invalid"
	ReasonDueDate = "due date invalid"
	ReasonStatus  = "status invalid"
)

var ErrValidation = errors.New("validation error")

// ValidationError carries the reason a candidate task was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Форматы дат, которые принимаются в dueDate
var dueDateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDueDate parses s with the first layout that accepts it.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dueDateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, err
}

// Validate checks a candidate task. An empty status is accepted: callers
// default it before storing.
func Validate(title, dueDate, status string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < minTitleLength {
		return &ValidationError{Reason: ReasonTitle}
	}
	if strings.TrimSpace(dueDate) == "" {
		return &ValidationError{Reason: ReasonDueDate}
	}
	if _, err := ParseDueDate(dueDate); err != nil {
		return &ValidationError{Reason: ReasonDueDate}
	}
	if status != "" && !validStatus(status) {
		return &ValidationError{Reason: ReasonStatus}
	}
	return nil
}

func ValidateTask(t model.Task) error {
	return Validate(t.Title, t.DueDate, t.Status)
}

// ValidateFilter checks only the criteria that were supplied.
func ValidateFilter(f model.TaskFilter) error {
	if f.Status != nil && !validStatus(*f.Status) {
		return &ValidationError{Reason: ReasonStatus}
	}
	if f.DueDate != nil {
		if _, err := ParseDueDate(*f.DueDate); err != nil {
			return &ValidationError{Reason: ReasonDueDate}
		}
	}
	return nil
}

func validStatus(s string) bool {
	return s == model.StatusPending || s == model.StatusCompleted
}
