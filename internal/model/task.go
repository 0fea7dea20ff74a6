package model

// Допустимые значения статуса задачи
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category,omitempty"`
	User        string `json:"user,omitempty"`
}

// TaskFilter - nil поле означает, что критерий не задан
type TaskFilter struct {
	Status  *string
	DueDate *string
}

// Empty reports whether no criteria were supplied.
func (f TaskFilter) Empty() bool {
	return f.Status == nil && f.DueDate == nil
}

// Match reports whether t satisfies every supplied criterion.
func (f TaskFilter) Match(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.DueDate != nil && t.DueDate != *f.DueDate {
		return false
	}
	return true
}

// TaskPatch - частичное обновление, пустая строка = поле не передано
type TaskPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category"`
	User        string `json:"user"`
}

// Apply overwrites the fields of t that are non-empty in p.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != "" {
		t.Title = p.Title
	}
	if p.Description != "" {
		t.Description = p.Description
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.DueDate != "" {
		t.DueDate = p.DueDate
	}
	if p.Category != "" {
		t.Category = p.Category
	}
	if p.User != "" {
		t.User = p.User
	}
}
