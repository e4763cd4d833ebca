package tasksrepo

import (
	"fmt"
	"time"
)

// Status is the derived lifecycle state of a task. It is never set to a
// value inconsistent with Progress: the checklist is the source of truth
// whenever it is mutated.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses is the fixed category set, in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus validates a raw status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Priority is the urgency classification of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities is the fixed category set, in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority validates a raw priority value.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// ChecklistItem is one entry of a task's checklist. Items have no identity
// beyond their position; checklist updates replace the whole list.
type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is the main entity type.
type Task struct {
	TaskID        string          `db:"task_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	Priority      Priority        `db:"priority"`
	Status        Status          `db:"status"`
	Progress      int             `db:"progress"`
	DueDate       time.Time       `db:"due_date"`
	AssignedTo    []string        `db:"assigned_to"`
	TodoChecklist []ChecklistItem `db:"todo_checklist"`
	Attachments   []string        `db:"attachments"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// CompletedTodoCount returns how many checklist items are done.
func (t Task) CompletedTodoCount() int {
	n := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			n++
		}
	}
	return n
}

// CreateTask contains fields for creating a new task.
type CreateTask struct {
	Title         string
	Description   string
	Priority      Priority
	DueDate       time.Time
	AssignedTo    []string
	TodoChecklist []ChecklistItem
	Attachments   []string
	CreatedBy     string
}

// UpdateTask contains fields for updating an existing task. All fields are
// optional pointers to support partial updates: absent fields leave the
// stored value untouched.
type UpdateTask struct {
	Title         *string
	Description   *string
	Priority      *Priority
	DueDate       *time.Time
	AssignedTo    *[]string
	TodoChecklist *[]ChecklistItem
	Attachments   *[]string
}

// TaskFilter holds the available fields a query can be filtered on. A nil
// field applies no constraint.
type TaskFilter struct {
	Status     *Status
	NotStatus  *Status
	AssignedTo *string
	DueBefore  *time.Time
}

// TaskDigest is the reduced projection used by recent-activity feeds. Full
// task bodies are not included.
type TaskDigest struct {
	TaskID    string    `json:"taskId"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	DueDate   time.Time `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// Digest projects a task onto its digest form.
func (t Task) Digest() TaskDigest {
	return TaskDigest{
		TaskID:    t.TaskID,
		Title:     t.Title,
		Status:    t.Status,
		Priority:  t.Priority,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
	}
}
