package tasksrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, storer *fakeStorer, id string, status Status, priority Priority, due time.Time, createdAt time.Time, assignees ...string) {
	t.Helper()

	err := storer.Create(context.Background(), Task{
		TaskID:     id,
		Title:      "task " + id,
		Status:     status,
		Priority:   priority,
		DueDate:    due,
		AssignedTo: assignees,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	})
	require.NoError(t, err)
}

func TestDashboard_GlobalScope(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	past := testNow.AddDate(0, 0, -1)
	future := testNow.AddDate(0, 0, 1)

	seedTask(t, storer, "t1", StatusPending, PriorityLow, future, testNow, "u1")
	seedTask(t, storer, "t2", StatusPending, PriorityHigh, past, testNow, "u1")
	seedTask(t, storer, "t3", StatusInProgress, PriorityHigh, past, testNow, "u2")
	// Past due but completed: never overdue.
	seedTask(t, storer, "t4", StatusCompleted, PriorityLow, past, testNow, "u2")

	data, err := repo.Dashboard(ctx, GlobalScope())
	require.NoError(t, err)

	assert.Equal(t, 4, data.Statistics.TotalTasks)
	assert.Equal(t, 2, data.Statistics.PendingTasks)
	assert.Equal(t, 1, data.Statistics.CompletedTasks)
	assert.Equal(t, 2, data.Statistics.OverdueTasks)

	assert.Equal(t, map[string]int{
		"Pending":    2,
		"InProgress": 1,
		"Completed":  1,
		"All":        4,
	}, data.Charts.TaskDistribution)

	// Medium has no tasks but is still reported.
	assert.Equal(t, map[string]int{
		"Low":    2,
		"Medium": 0,
		"High":   2,
	}, data.Charts.TaskPriorityLevels)
}

func TestDashboard_EmptyScopeIsZeroFilled(t *testing.T) {
	repo, _ := newTestRepository(t)

	data, err := repo.Dashboard(context.Background(), GlobalScope())
	require.NoError(t, err)

	assert.Equal(t, Statistics{}, data.Statistics)
	assert.Equal(t, map[string]int{"Pending": 0, "InProgress": 0, "Completed": 0, "All": 0}, data.Charts.TaskDistribution)
	assert.Equal(t, map[string]int{"Low": 0, "Medium": 0, "High": 0}, data.Charts.TaskPriorityLevels)
	assert.Empty(t, data.Charts.RecentTasks)
}

func TestDashboard_AssigneeScope(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	future := testNow.AddDate(0, 0, 1)

	seedTask(t, storer, "t1", StatusPending, PriorityLow, future, testNow, "u1")
	seedTask(t, storer, "t2", StatusInProgress, PriorityMedium, future, testNow, "u1", "u2")
	seedTask(t, storer, "t3", StatusCompleted, PriorityHigh, future, testNow, "u2")

	data, err := repo.Dashboard(ctx, AssigneeScope("u1"))
	require.NoError(t, err)

	assert.Equal(t, 2, data.Statistics.TotalTasks)
	assert.Equal(t, 1, data.Statistics.PendingTasks)
	assert.Equal(t, 0, data.Statistics.CompletedTasks)
	assert.Len(t, data.Charts.RecentTasks, 2)
}

func TestDashboard_RecentTasks(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		seedTask(t, storer, fmt.Sprintf("t%02d", i), StatusPending, PriorityLow,
			testNow.AddDate(0, 0, 1), testNow.Add(time.Duration(i)*time.Minute), "u1")
	}

	data, err := repo.Dashboard(ctx, GlobalScope())
	require.NoError(t, err)

	require.Len(t, data.Charts.RecentTasks, 10)
	assert.Equal(t, "t11", data.Charts.RecentTasks[0].TaskID, "newest first")
	assert.Equal(t, "t02", data.Charts.RecentTasks[9].TaskID)

	digest := data.Charts.RecentTasks[0]
	assert.Equal(t, "task t11", digest.Title)
	assert.Equal(t, StatusPending, digest.Status)
	assert.Equal(t, PriorityLow, digest.Priority)
}

func TestStatusSummary(t *testing.T) {
	repo, storer := newTestRepository(t)
	ctx := context.Background()

	future := testNow.AddDate(0, 0, 1)
	seedTask(t, storer, "t1", StatusPending, PriorityLow, future, testNow, "u1")
	seedTask(t, storer, "t2", StatusInProgress, PriorityLow, future, testNow, "u1")
	seedTask(t, storer, "t3", StatusInProgress, PriorityLow, future, testNow, "u2")

	summary, err := repo.StatusSummary(ctx, GlobalScope())
	require.NoError(t, err)
	assert.Equal(t, StatusSummary{All: 3, PendingTasks: 1, InProgressTasks: 2, CompletedTasks: 0}, summary)

	summary, err = repo.StatusSummary(ctx, AssigneeScope("u2"))
	require.NoError(t, err)
	assert.Equal(t, StatusSummary{All: 1, InProgressTasks: 1}, summary)
}

func TestCountByAssignee(t *testing.T) {
	tasks := []Task{
		{Status: StatusPending, AssignedTo: []string{"u1", "u2"}},
		{Status: StatusInProgress, AssignedTo: []string{"u1"}},
		{Status: StatusCompleted, AssignedTo: []string{"u2"}},
		{Status: StatusCompleted, AssignedTo: nil},
	}

	stats := CountByAssignee(tasks)

	assert.Equal(t, AssigneeStats{TaskCount: 2, PendingTasks: 1, InProgressTasks: 1}, stats["u1"])
	assert.Equal(t, AssigneeStats{TaskCount: 2, PendingTasks: 1, CompletedTasks: 1}, stats["u2"])
	assert.Len(t, stats, 2, "unassigned tasks count for nobody")
}
