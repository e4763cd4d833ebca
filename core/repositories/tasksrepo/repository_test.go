package tasksrepo

import (
	"context"
	"io"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/sdk/logger"
)

// fakeStorer is an in-memory Storer for exercising the repository without a
// database.
type fakeStorer struct {
	tasks map[string]Task
}

func newFakeStorer() *fakeStorer {
	return &fakeStorer{tasks: make(map[string]Task)}
}

func (f *fakeStorer) Create(ctx context.Context, task Task) error {
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeStorer) GetByID(ctx context.Context, taskID string) (Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return Task{}, repositories.ErrNotFound
	}
	return task, nil
}

func (f *fakeStorer) Update(ctx context.Context, task Task) error {
	if _, ok := f.tasks[task.TaskID]; !ok {
		return repositories.ErrNotFound
	}
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeStorer) Delete(ctx context.Context, taskID string) error {
	if _, ok := f.tasks[taskID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeStorer) List(ctx context.Context, filter TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]Task, error) {
	var out []Task
	for _, task := range f.tasks {
		if f.matches(filter, task) {
			out = append(out, task)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if orderBy.Direction == "DESC" {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if page.Limit > 0 && len(out) > page.Limit {
		out = out[:page.Limit]
	}

	return out, nil
}

func (f *fakeStorer) Count(ctx context.Context, filter TaskFilter) (int, error) {
	n := 0
	for _, task := range f.tasks {
		if f.matches(filter, task) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorer) GroupCount(ctx context.Context, filter TaskFilter, field string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, task := range f.tasks {
		if !f.matches(filter, task) {
			continue
		}
		switch field {
		case "status":
			counts[string(task.Status)]++
		case "priority":
			counts[string(task.Priority)]++
		}
	}
	return counts, nil
}

func (f *fakeStorer) matches(filter TaskFilter, task Task) bool {
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.NotStatus != nil && task.Status == *filter.NotStatus {
		return false
	}
	if filter.AssignedTo != nil && !slices.Contains(task.AssignedTo, *filter.AssignedTo) {
		return false
	}
	if filter.DueBefore != nil && !task.DueDate.Before(*filter.DueBefore) {
		return false
	}
	return true
}

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, *fakeStorer) {
	t.Helper()

	storer := newFakeStorer()
	repo := NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), storer)
	repo.now = func() time.Time { return testNow }

	return repo, storer
}

func validCreate() CreateTask {
	return CreateTask{
		Title:       "Prepare onboarding",
		Description: "Collect the material for the new hires",
		DueDate:     testNow.AddDate(0, 0, 7),
		AssignedTo:  []string{"u1", "u2"},
		CreatedBy:   "admin-1",
	}
}

func TestRepository_Create_Validation(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateTask)
	}{
		{"missing title", func(c *CreateTask) { c.Title = "" }},
		{"missing description", func(c *CreateTask) { c.Description = "" }},
		{"missing due date", func(c *CreateTask) { c.DueDate = time.Time{} }},
		{"missing assignees", func(c *CreateTask) { c.AssignedTo = nil }},
		{"bad priority", func(c *CreateTask) { c.Priority = "Urgent" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreate()
			tt.mutate(&input)

			_, err := repo.Create(ctx, input)
			require.Error(t, err)
			assert.True(t, repositories.IsValidationError(err))
		})
	}
}

func TestRepository_Create_DerivesInitialState(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	input := validCreate()
	input.TodoChecklist = []ChecklistItem{
		{Text: "book room", Completed: true},
		{Text: "send invites"},
		{Text: "print badges"},
	}

	task, err := repo.Create(ctx, input)
	require.NoError(t, err)

	assert.NotEmpty(t, task.TaskID)
	assert.Equal(t, PriorityLow, task.Priority, "priority defaults to Low")
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, 33, task.Progress)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.Equal(t, testNow, task.UpdatedAt)

	stored, err := storer.GetByID(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, task, stored)
}

func TestRepository_Create_EmptyChecklistIsPending(t *testing.T) {
	repo, _ := newTestRepository(t)

	task, err := repo.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, 0, task.Progress)
}

func TestRepository_Update_PartialMerge(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	input := validCreate()
	input.Priority = PriorityHigh
	created, err := repo.Create(ctx, input)
	require.NoError(t, err)

	newTitle := "Prepare onboarding v2"
	updated, err := repo.Update(ctx, created.TaskID, UpdateTask{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	// Untouched fields survive the merge.
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, PriorityHigh, updated.Priority)
	assert.Equal(t, created.AssignedTo, updated.AssignedTo)
	assert.Equal(t, created.DueDate, updated.DueDate)
}

func TestRepository_Update_ChecklistRederives(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validCreate())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)

	checklist := []ChecklistItem{
		{Text: "a", Completed: true},
		{Text: "b", Completed: true},
	}
	updated, err := repo.Update(ctx, created.TaskID, UpdateTask{TodoChecklist: &checklist})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestRepository_Update_InvalidPriority(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validCreate())
	require.NoError(t, err)

	bad := Priority("Critical")
	_, err = repo.Update(ctx, created.TaskID, UpdateTask{Priority: &bad})
	assert.True(t, repositories.IsValidationError(err))
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	title := "nope"
	_, err := repo.Update(context.Background(), "missing-id", UpdateTask{Title: &title})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRepository_UpdateChecklist(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validCreate())
	require.NoError(t, err)

	updated, err := repo.UpdateChecklist(ctx, created.TaskID, []ChecklistItem{
		{Text: "a", Completed: true},
		{Text: "b"},
		{Text: "c"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, 33, updated.Progress)

	// Replacing with an empty checklist resets to Pending.
	updated, err = repo.UpdateChecklist(ctx, created.TaskID, []ChecklistItem{})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, 0, updated.Progress)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	input := validCreate()
	input.TodoChecklist = []ChecklistItem{{Text: "a"}, {Text: "b"}}
	created, err := repo.Create(ctx, input)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.TaskID, Status("Done"))
	assert.True(t, repositories.IsValidationError(err))

	updated, err := repo.UpdateStatus(ctx, created.TaskID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	for _, item := range updated.TodoChecklist {
		assert.True(t, item.Completed)
	}

	// Moving back to Pending leaves the checklist and progress alone.
	updated, err = repo.UpdateStatus(ctx, created.TaskID, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	for _, item := range updated.TodoChecklist {
		assert.True(t, item.Completed)
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.TaskID))
	assert.Empty(t, storer.tasks)

	assert.ErrorIs(t, repo.Delete(ctx, created.TaskID), repositories.ErrNotFound)
}

func TestRepository_List_FilterAndOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		input := validCreate()
		repo.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Hour) }
		_, err := repo.Create(ctx, input)
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx, GlobalScope(), fop.PageStringCursor{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].CreatedAt.After(tasks[i-1].CreatedAt), "expected newest first")
	}

	pending := StatusPending
	tasks, err = repo.List(ctx, TaskFilter{Status: &pending}, fop.PageStringCursor{})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}
