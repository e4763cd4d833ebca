package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
	"github.com/tasktide/tasktide/sdk/validation"
)

// bridge provides HTTP handlers for User operations.
type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
	taskRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, userRepository *usersrepo.Repository, taskRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		userRepository: userRepository,
		taskRepository: taskRepository,
	}
}

// httpList returns the member directory with per-user task counts. The
// counts come from a single pass over the task set rather than one query per
// member.
func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	users, err := b.userRepository.List(ctx, usersrepo.UserFilter{
		Role: validation.StringPtr("member"),
	})
	if err != nil {
		return errFromRepository(err)
	}

	tasks, err := b.taskRepository.List(ctx, tasksrepo.GlobalScope(), fop.PageStringCursor{})
	if err != nil {
		return errFromRepository(err)
	}

	stats := tasksrepo.CountByAssignee(tasks)

	bridgeUsers := make([]User, len(users))
	for i, user := range users {
		bu := MarshalToBridge(user)
		s := stats[user.UserID]
		bu.PendingTasks = s.PendingTasks
		bu.InProgressTasks = s.InProgressTasks
		bu.CompletedTasks = s.CompletedTasks
		bridgeUsers[i] = bu
	}

	return web.NewJSONResponse(ListUsersResponse{Users: bridgeUsers})
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	user, err := b.userRepository.GetByID(ctx, web.Param(r, "user_id"))
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(MarshalToBridge(user))
}

func errFromRepository(err error) *errs.Error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errs.New(errs.NotFound, err)
	default:
		return errs.New(errs.InternalOnlyLog, err)
	}
}
