package tasksrepobridge

import (
	"fmt"
	"time"

	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
)

// AssigneeProfile is the display form of an assignee reference, resolved
// from the user directory at read time.
type AssigneeProfile struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Task is the bridge model returned to clients. Assignees are resolved
// profiles rather than bare ids.
type Task struct {
	TaskID             string                    `json:"taskId"`
	Title              string                    `json:"title"`
	Description        string                    `json:"description"`
	Priority           tasksrepo.Priority        `json:"priority"`
	Status             tasksrepo.Status          `json:"status"`
	Progress           int                       `json:"progress"`
	DueDate            time.Time                 `json:"dueDate"`
	AssignedTo         []AssigneeProfile         `json:"assignedTo"`
	TodoChecklist      []tasksrepo.ChecklistItem `json:"todoChecklist"`
	Attachments        []string                  `json:"attachments"`
	CompletedTodoCount int                       `json:"completedTodoCount"`
	CreatedBy          string                    `json:"createdBy"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

// CreateTaskInput is the request model for creating a task. Field presence
// is validated in the repository so the rules live in one place.
type CreateTaskInput struct {
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Priority      string                    `json:"priority"`
	DueDate       time.Time                 `json:"dueDate"`
	AssignedTo    []string                  `json:"assignedTo"`
	TodoChecklist []tasksrepo.ChecklistItem `json:"todoChecklist"`
	Attachments   []string                  `json:"attachments"`
}

// UpdateTaskInput is the request model for partial updates. Absent fields
// leave the stored value untouched.
type UpdateTaskInput struct {
	Title         *string                    `json:"title"`
	Description   *string                    `json:"description"`
	Priority      *string                    `json:"priority"`
	DueDate       *time.Time                 `json:"dueDate"`
	AssignedTo    *[]string                  `json:"assignedTo"`
	TodoChecklist *[]tasksrepo.ChecklistItem `json:"todoChecklist"`
	Attachments   *[]string                  `json:"attachments"`
}

// UpdateStatusInput is the request model for a status override.
type UpdateStatusInput struct {
	Status string `json:"status"`
}

// Validate checks the input.
func (i UpdateStatusInput) Validate() error {
	if i.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// UpdateChecklistInput is the request model for a whole-checklist replace.
// The pointer distinguishes an absent list from an intentionally empty one.
type UpdateChecklistInput struct {
	TodoChecklist *[]tasksrepo.ChecklistItem `json:"todoChecklist"`
}

// Validate checks the input.
func (i UpdateChecklistInput) Validate() error {
	if i.TodoChecklist == nil {
		return fmt.Errorf("todoChecklist is required")
	}
	return nil
}

// ListTasksResponse carries the task list alongside status counts computed
// over the same scope, so the listing and summary always agree.
type ListTasksResponse struct {
	Tasks         []Task                  `json:"tasks"`
	StatusSummary tasksrepo.StatusSummary `json:"statusSummary"`
}
