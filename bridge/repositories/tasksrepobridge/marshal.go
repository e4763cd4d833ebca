package tasksrepobridge

import (
	"errors"

	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
)

// MarshalToBridge converts a core task to the bridge model, resolving
// assignee ids against the supplied user index. Ids that do not resolve are
// dropped from the profile list; the reference may point at a removed user.
func MarshalToBridge(task tasksrepo.Task, users map[string]usersrepo.User) Task {
	profiles := make([]AssigneeProfile, 0, len(task.AssignedTo))
	for _, userID := range task.AssignedTo {
		user, ok := users[userID]
		if !ok {
			continue
		}
		profiles = append(profiles, AssigneeProfile{
			UserID:          user.UserID,
			Name:            user.Name,
			Email:           user.Email,
			ProfileImageURL: user.ProfileImageURL,
		})
	}

	checklist := task.TodoChecklist
	if checklist == nil {
		checklist = []tasksrepo.ChecklistItem{}
	}
	attachments := task.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return Task{
		TaskID:             task.TaskID,
		Title:              task.Title,
		Description:        task.Description,
		Priority:           task.Priority,
		Status:             task.Status,
		Progress:           task.Progress,
		DueDate:            task.DueDate,
		AssignedTo:         profiles,
		TodoChecklist:      checklist,
		Attachments:        attachments,
		CompletedTodoCount: task.CompletedTodoCount(),
		CreatedBy:          task.CreatedBy,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}
}

// MarshalListToBridge converts a list of core tasks to bridge models.
func MarshalListToBridge(tasks []tasksrepo.Task, users map[string]usersrepo.User) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task, users)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input.
func MarshalCreateToRepository(input CreateTaskInput, createdBy string) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:         input.Title,
		Description:   input.Description,
		Priority:      tasksrepo.Priority(input.Priority),
		DueDate:       input.DueDate,
		AssignedTo:    input.AssignedTo,
		TodoChecklist: input.TodoChecklist,
		Attachments:   input.Attachments,
		CreatedBy:     createdBy,
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input.
func MarshalUpdateToRepository(input UpdateTaskInput) tasksrepo.UpdateTask {
	upd := tasksrepo.UpdateTask{
		Title:         input.Title,
		Description:   input.Description,
		DueDate:       input.DueDate,
		AssignedTo:    input.AssignedTo,
		TodoChecklist: input.TodoChecklist,
		Attachments:   input.Attachments,
	}

	if input.Priority != nil {
		priority := tasksrepo.Priority(*input.Priority)
		upd.Priority = &priority
	}

	return upd
}

// errFromRepository translates repository errors to coded bridge errors.
// Anything unrecognized is a store failure: logged with full detail, sent to
// the client as a generic internal error.
func errFromRepository(err error) *errs.Error {
	switch {
	case repositories.IsValidationError(err):
		return errs.New(errs.InvalidArgument, err)
	case errors.Is(err, repositories.ErrNotFound):
		return errs.New(errs.NotFound, err)
	default:
		return errs.New(errs.InternalOnlyLog, err)
	}
}
