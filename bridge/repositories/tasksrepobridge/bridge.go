package tasksrepobridge

import (
	"context"
	"net/http"
	"slices"

	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
	"github.com/tasktide/tasktide/bridge/scaffolding/fopbridge"
	"github.com/tasktide/tasktide/bridge/scaffolding/mid"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/core/scaffolding/authz"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
)

// bridge provides HTTP handlers for Task operations.
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

// assigneeIndex batch-resolves every assignee referenced by the given tasks.
func (b *bridge) assigneeIndex(ctx context.Context, tasks ...tasksrepo.Task) (map[string]usersrepo.User, error) {
	var userIDs []string
	for _, task := range tasks {
		userIDs = append(userIDs, task.AssignedTo...)
	}

	users, err := b.userRepository.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	index := make(map[string]usersrepo.User, len(users))
	for _, user := range users {
		index[user.UserID] = user
	}

	return index, nil
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if !authz.CanMutate(p, nil, authz.OpEditCoreFields) {
		return errs.Newf(errs.PermissionDenied, "only admins can create tasks")
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.taskRepository.Create(ctx, MarshalCreateToRepository(input, p.UserID))
	if err != nil {
		return errFromRepository(err)
	}

	users, err := b.assigneeIndex(ctx, task)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task, users), http.StatusCreated)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	scope := tasksrepo.GlobalScope()
	if p.Role != authz.RoleAdmin {
		scope = tasksrepo.AssigneeScope(p.UserID)
	}

	// The status filter narrows the listing only. The summary runs over the
	// bare scope so its counts describe the caller's whole task set.
	filter := scope
	if qs := web.QueryParam(r, "status"); qs != "" {
		status, err := tasksrepo.ParseStatus(qs)
		if err != nil {
			return errs.New(errs.InvalidArgument, err)
		}
		filter.Status = &status
	}

	page, err := fop.ParsePageStringCursor(web.QueryParam(r, "limit"), web.QueryParam(r, "cursor"))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tasks, err := b.taskRepository.List(ctx, filter, page)
	if err != nil {
		return errFromRepository(err)
	}

	summary, err := b.taskRepository.StatusSummary(ctx, scope)
	if err != nil {
		return errFromRepository(err)
	}

	users, err := b.assigneeIndex(ctx, tasks...)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(ListTasksResponse{
		Tasks:         MarshalListToBridge(tasks, users),
		StatusSummary: summary,
	})
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	task, err := b.taskRepository.GetByID(ctx, web.Param(r, "task_id"))
	if err != nil {
		return errFromRepository(err)
	}

	if p.Role != authz.RoleAdmin && !slices.Contains(task.AssignedTo, p.UserID) {
		return errs.Newf(errs.PermissionDenied, "not assigned to this task")
	}

	users, err := b.assigneeIndex(ctx, task)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(MarshalToBridge(task, users))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if !authz.CanMutate(p, nil, authz.OpEditCoreFields) {
		return errs.Newf(errs.PermissionDenied, "only admins can edit tasks")
	}

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.taskRepository.Update(ctx, web.Param(r, "task_id"), MarshalUpdateToRepository(input))
	if err != nil {
		return errFromRepository(err)
	}

	users, err := b.assigneeIndex(ctx, task)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(MarshalToBridge(task, users))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if !authz.CanMutate(p, nil, authz.OpDelete) {
		return errs.Newf(errs.PermissionDenied, "only admins can delete tasks")
	}

	if err := b.taskRepository.Delete(ctx, web.Param(r, "task_id")); err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(fopbridge.CodeResponse{
		Code:    "deleted",
		Message: "task deleted",
	})
}

func (b *bridge) httpUpdateStatus(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID := web.Param(r, "task_id")

	task, err := b.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return errFromRepository(err)
	}

	if !authz.CanMutate(p, task.AssignedTo, authz.OpUpdateStatus) {
		return errs.Newf(errs.PermissionDenied, "not assigned to this task")
	}

	var input UpdateStatusInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := b.taskRepository.UpdateStatus(ctx, taskID, tasksrepo.Status(input.Status))
	if err != nil {
		return errFromRepository(err)
	}

	users, err := b.assigneeIndex(ctx, updated)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(MarshalToBridge(updated, users))
}

func (b *bridge) httpUpdateChecklist(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	taskID := web.Param(r, "task_id")

	task, err := b.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return errFromRepository(err)
	}

	if !authz.CanMutate(p, task.AssignedTo, authz.OpUpdateChecklist) {
		return errs.Newf(errs.PermissionDenied, "not assigned to this task")
	}

	var input UpdateChecklistInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := b.taskRepository.UpdateChecklist(ctx, taskID, *input.TodoChecklist)
	if err != nil {
		return errFromRepository(err)
	}

	users, err := b.assigneeIndex(ctx, updated)
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(MarshalToBridge(updated, users))
}

func (b *bridge) httpDashboardData(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if p.Role != authz.RoleAdmin {
		return errs.Newf(errs.PermissionDenied, "admin role required")
	}

	data, err := b.taskRepository.Dashboard(ctx, tasksrepo.GlobalScope())
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(data)
}

func (b *bridge) httpUserDashboardData(ctx context.Context, r *http.Request) web.Encoder {
	p, err := mid.GetPrincipal(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	data, err := b.taskRepository.Dashboard(ctx, tasksrepo.AssigneeScope(p.UserID))
	if err != nil {
		return errFromRepository(err)
	}

	return web.NewJSONResponse(data)
}
