package tasksrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasktide/tasktide/core/scaffolding/fop"
)

const recentTasksLimit = 10

// GlobalScope is the admin view: no filter.
func GlobalScope() TaskFilter {
	return TaskFilter{}
}

// AssigneeScope limits the view to tasks where userID is an assignee.
func AssigneeScope(userID string) TaskFilter {
	return TaskFilter{AssignedTo: &userID}
}

// Statistics is the headline block of a dashboard. OverdueTasks is always
// recomputed at call time, never persisted.
type Statistics struct {
	TotalTasks     int `json:"totalTasks"`
	PendingTasks   int `json:"pendingTasks"`
	CompletedTasks int `json:"completedTasks"`
	OverdueTasks   int `json:"overdueTasks"`
}

// Charts carries the distribution and recent-activity blocks.
type Charts struct {
	TaskDistribution   map[string]int `json:"taskDistribution"`
	TaskPriorityLevels map[string]int `json:"taskPriorityLevels"`
	RecentTasks        []TaskDigest   `json:"recentTasks"`
}

// DashboardData is the full dashboard payload for one scope.
type DashboardData struct {
	Statistics Statistics `json:"statistics"`
	Charts     Charts     `json:"charts"`
}

// StatusSummary reports per-status counts for a scope, zero-filled over the
// fixed status set.
type StatusSummary struct {
	All             int `json:"all"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// Dashboard computes statistics, distributions and the recent-activity feed
// for one scope. All blocks run against the same scope filter so the numbers
// agree with each other within a response; nothing is maintained as a
// running tally.
func (r *Repository) Dashboard(ctx context.Context, scope TaskFilter) (DashboardData, error) {
	total, err := r.storer.Count(ctx, scope)
	if err != nil {
		return DashboardData{}, fmt.Errorf("count tasks: %w", err)
	}

	statusCounts, err := r.storer.GroupCount(ctx, scope, "status")
	if err != nil {
		return DashboardData{}, fmt.Errorf("count tasks by status: %w", err)
	}

	priorityCounts, err := r.storer.GroupCount(ctx, scope, "priority")
	if err != nil {
		return DashboardData{}, fmt.Errorf("count tasks by priority: %w", err)
	}

	overdueFilter := scope
	notCompleted := StatusCompleted
	now := r.now().UTC()
	overdueFilter.NotStatus = &notCompleted
	overdueFilter.DueBefore = &now

	overdue, err := r.storer.Count(ctx, overdueFilter)
	if err != nil {
		return DashboardData{}, fmt.Errorf("count overdue tasks: %w", err)
	}

	recent, err := r.storer.List(ctx, scope, fop.NewBy("created_at", "DESC"), fop.PageStringCursor{Limit: recentTasksLimit})
	if err != nil {
		return DashboardData{}, fmt.Errorf("list recent tasks: %w", err)
	}

	digests := make([]TaskDigest, 0, len(recent))
	for _, task := range recent {
		digests = append(digests, task.Digest())
	}

	// Missing categories must be reported as zero, not omitted.
	taskDistribution := make(map[string]int, len(Statuses)+1)
	for _, status := range Statuses {
		key := strings.ReplaceAll(string(status), " ", "")
		taskDistribution[key] = statusCounts[string(status)]
	}
	taskDistribution["All"] = total

	taskPriorityLevels := make(map[string]int, len(Priorities))
	for _, priority := range Priorities {
		taskPriorityLevels[string(priority)] = priorityCounts[string(priority)]
	}

	return DashboardData{
		Statistics: Statistics{
			TotalTasks:     total,
			PendingTasks:   statusCounts[string(StatusPending)],
			CompletedTasks: statusCounts[string(StatusCompleted)],
			OverdueTasks:   overdue,
		},
		Charts: Charts{
			TaskDistribution:   taskDistribution,
			TaskPriorityLevels: taskPriorityLevels,
			RecentTasks:        digests,
		},
	}, nil
}

// StatusSummary computes zero-filled per-status counts for a scope. Used by
// the task list endpoint so the listing and its summary always agree.
func (r *Repository) StatusSummary(ctx context.Context, scope TaskFilter) (StatusSummary, error) {
	total, err := r.storer.Count(ctx, scope)
	if err != nil {
		return StatusSummary{}, fmt.Errorf("count tasks: %w", err)
	}

	statusCounts, err := r.storer.GroupCount(ctx, scope, "status")
	if err != nil {
		return StatusSummary{}, fmt.Errorf("count tasks by status: %w", err)
	}

	return StatusSummary{
		All:             total,
		PendingTasks:    statusCounts[string(StatusPending)],
		InProgressTasks: statusCounts[string(StatusInProgress)],
		CompletedTasks:  statusCounts[string(StatusCompleted)],
	}, nil
}

// AssigneeStats aggregates per-user task counts for the report feeds.
type AssigneeStats struct {
	TaskCount       int `json:"taskCount"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// CountByAssignee tallies tasks per assignee. A task with several assignees
// counts once for each of them.
func CountByAssignee(tasks []Task) map[string]AssigneeStats {
	stats := make(map[string]AssigneeStats)

	for _, task := range tasks {
		for _, userID := range task.AssignedTo {
			s := stats[userID]
			s.TaskCount++

			switch task.Status {
			case StatusPending:
				s.PendingTasks++
			case StatusInProgress:
				s.InProgressTasks++
			case StatusCompleted:
				s.CompletedTasks++
			}

			stats[userID] = s
		}
	}

	return stats
}
