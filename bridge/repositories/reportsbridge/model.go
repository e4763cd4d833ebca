package reportsbridge

import (
	"time"

	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
)

// ExportAssignee identifies one assignee in a task export row.
type ExportAssignee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskExportRow is one row of the task report feed. The external renderer
// turns these into spreadsheet rows, so the shape is flat and display-ready.
type TaskExportRow struct {
	TaskID             string             `json:"taskId"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Priority           tasksrepo.Priority `json:"priority"`
	Status             tasksrepo.Status   `json:"status"`
	DueDate            time.Time          `json:"dueDate"`
	AssignedTo         []ExportAssignee   `json:"assignedTo"`
	CompletedTodoCount int                `json:"completedTodoCount"`
	TodoCount          int                `json:"todoCount"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// TaskExportResponse wraps the task feed.
type TaskExportResponse struct {
	Tasks []TaskExportRow `json:"tasks"`
}

// UserExportRow is one row of the per-user report feed.
type UserExportRow struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	TaskCount       int    `json:"taskCount"`
	PendingTasks    int    `json:"pendingTasks"`
	InProgressTasks int    `json:"inProgressTasks"`
	CompletedTasks  int    `json:"completedTasks"`
}

// UserExportResponse wraps the per-user feed.
type UserExportResponse struct {
	Users []UserExportRow `json:"users"`
}
