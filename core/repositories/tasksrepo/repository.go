// Package tasksrepo owns the Task entity: CRUD over a Storer plus the
// derivation rules that keep status and progress consistent with the
// checklist.
package tasksrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/sdk/logger"
)

// Storer defines the data storage interface for Task. Writes are whole-row:
// concurrent mutations to the same task are not coordinated and the last
// write to reach the store wins.
type Storer interface {
	Create(ctx context.Context, task Task) error
	GetByID(ctx context.Context, taskID string) (Task, error)
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, taskID string) error
	List(ctx context.Context, filter TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]Task, error)
	Count(ctx context.Context, filter TaskFilter) (int, error)
	GroupCount(ctx context.Context, filter TaskFilter, field string) (map[string]int, error)
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewRepository creates a new Task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// Create validates the input, derives the initial status and progress from
// the supplied checklist, and persists the task.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if input.Title == "" {
		return Task{}, repositories.NewValidationErrorf("title is required")
	}
	if input.Description == "" {
		return Task{}, repositories.NewValidationErrorf("description is required")
	}
	if input.DueDate.IsZero() {
		return Task{}, repositories.NewValidationErrorf("dueDate is required")
	}
	if input.AssignedTo == nil {
		return Task{}, repositories.NewValidationErrorf("assignedTo must be an array of user IDs")
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityLow
	}
	if _, err := ParsePriority(string(priority)); err != nil {
		return Task{}, repositories.NewValidationErrorf("invalid priority: %s", priority)
	}

	status, progress, checklist := deriveState(deriveChecklistReplace, input.TodoChecklist, 0, "")

	now := r.now().UTC()
	task := Task{
		TaskID:        uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Priority:      priority,
		Status:        status,
		Progress:      progress,
		DueDate:       input.DueDate,
		AssignedTo:    input.AssignedTo,
		TodoChecklist: checklist,
		Attachments:   input.Attachments,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.storer.Create(ctx, task); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID, "created_by", task.CreatedBy)
	return task, nil
}

// GetByID returns a single task.
func (r *Repository) GetByID(ctx context.Context, taskID string) (Task, error) {
	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}
	return task, nil
}

// List returns tasks matching the filter, most recently created first.
func (r *Repository) List(ctx context.Context, filter TaskFilter, page fop.PageStringCursor) ([]Task, error) {
	orderBy := fop.NewBy("created_at", "DESC")

	tasks, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the supplied partial fields over the stored task. Absent
// fields are left untouched. A checklist supplied through this path
// re-derives status and progress so the invariant holds.
func (r *Repository) Update(ctx context.Context, taskID string, upd UpdateTask) (Task, error) {
	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Priority != nil {
		if _, err := ParsePriority(string(*upd.Priority)); err != nil {
			return Task{}, repositories.NewValidationErrorf("invalid priority: %s", *upd.Priority)
		}
		task.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		task.DueDate = *upd.DueDate
	}
	if upd.AssignedTo != nil {
		task.AssignedTo = *upd.AssignedTo
	}
	if upd.Attachments != nil {
		task.Attachments = *upd.Attachments
	}
	if upd.TodoChecklist != nil {
		task.Status, task.Progress, task.TodoChecklist = deriveState(deriveChecklistReplace, *upd.TodoChecklist, task.Progress, "")
	}

	task.UpdatedAt = r.now().UTC()

	if err := r.storer.Update(ctx, task); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}

	return task, nil
}

// Delete removes a task permanently. There is no soft delete.
func (r *Repository) Delete(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}

// UpdateChecklist replaces the whole checklist and re-derives status and
// progress from it. Re-applying the same checklist yields the same state.
func (r *Repository) UpdateChecklist(ctx context.Context, taskID string, checklist []ChecklistItem) (Task, error) {
	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}

	task.Status, task.Progress, task.TodoChecklist = deriveState(deriveChecklistReplace, checklist, task.Progress, "")
	task.UpdatedAt = r.now().UTC()

	if err := r.storer.Update(ctx, task); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}

	return task, nil
}

// UpdateStatus applies a status override. Completed forces the checklist
// done and progress to 100; other values pass through unchanged.
func (r *Repository) UpdateStatus(ctx context.Context, taskID string, status Status) (Task, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return Task{}, repositories.NewValidationErrorf("invalid status: %s", status)
	}

	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}

	task.Status, task.Progress, task.TodoChecklist = deriveState(deriveStatusOverride, task.TodoChecklist, task.Progress, status)
	task.UpdatedAt = r.now().UTC()

	if err := r.storer.Update(ctx, task); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}

	return task, nil
}
