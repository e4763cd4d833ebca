package reportsbridge

import (
	"context"
	"net/http"

	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
)

// bridge provides HTTP handlers for the report feeds.
type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
	userRepository *usersrepo.Repository
}

func newBridge(log *logger.Logger, taskRepository *tasksrepo.Repository, userRepository *usersrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		taskRepository: taskRepository,
		userRepository: userRepository,
	}
}

// httpExportTasks returns every task with its assignee names and emails
// resolved, as a feed for the external report renderer.
func (b *bridge) httpExportTasks(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.taskRepository.List(ctx, tasksrepo.GlobalScope(), fop.PageStringCursor{})
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	var userIDs []string
	for _, task := range tasks {
		userIDs = append(userIDs, task.AssignedTo...)
	}

	users, err := b.userRepository.GetByIDs(ctx, userIDs)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	index := make(map[string]usersrepo.User, len(users))
	for _, user := range users {
		index[user.UserID] = user
	}

	rows := make([]TaskExportRow, len(tasks))
	for i, task := range tasks {
		assignees := make([]ExportAssignee, 0, len(task.AssignedTo))
		for _, userID := range task.AssignedTo {
			user, ok := index[userID]
			if !ok {
				continue
			}
			assignees = append(assignees, ExportAssignee{
				Name:  user.Name,
				Email: user.Email,
			})
		}

		rows[i] = TaskExportRow{
			TaskID:             task.TaskID,
			Title:              task.Title,
			Description:        task.Description,
			Priority:           task.Priority,
			Status:             task.Status,
			DueDate:            task.DueDate,
			AssignedTo:         assignees,
			CompletedTodoCount: task.CompletedTodoCount(),
			TodoCount:          len(task.TodoChecklist),
			CreatedAt:          task.CreatedAt,
		}
	}

	return web.NewJSONResponse(TaskExportResponse{Tasks: rows})
}

// httpExportUsers returns per-user task aggregates for the external report
// renderer. The counts come from one pass over the task set.
func (b *bridge) httpExportUsers(ctx context.Context, r *http.Request) web.Encoder {
	users, err := b.userRepository.List(ctx, usersrepo.UserFilter{})
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	tasks, err := b.taskRepository.List(ctx, tasksrepo.GlobalScope(), fop.PageStringCursor{})
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	stats := tasksrepo.CountByAssignee(tasks)

	rows := make([]UserExportRow, len(users))
	for i, user := range users {
		s := stats[user.UserID]
		rows[i] = UserExportRow{
			UserID:          user.UserID,
			Name:            user.Name,
			Email:           user.Email,
			TaskCount:       s.TaskCount,
			PendingTasks:    s.PendingTasks,
			InProgressTasks: s.InProgressTasks,
			CompletedTasks:  s.CompletedTasks,
		}
	}

	return web.NewJSONResponse(UserExportResponse{Users: rows})
}
