// Package api wires the bridge routes onto the web handler.
package api

import (
	"github.com/tasktide/tasktide/app/tasktide/config"
	"github.com/tasktide/tasktide/bridge/repositories/reportsbridge"
	"github.com/tasktide/tasktide/bridge/repositories/tasksrepobridge"
	"github.com/tasktide/tasktide/bridge/repositories/usersrepobridge"
	"github.com/tasktide/tasktide/bridge/scaffolding/mid"
	"github.com/tasktide/tasktide/infrastructure/web"
)

// AddHandlers registers every API route. All routes require an established
// principal; finer checks live with the handlers.
func AddHandlers(app *web.WebHandler, cfg config.TaskTide) {
	group := app.Group("/api/v1", mid.Principal())

	tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
		Log:             cfg.Logger,
		TasksRepository: cfg.Repositories.Tasks,
		UsersRepository: cfg.Repositories.Users,
	})

	usersrepobridge.AddHttpRoutes(group, usersrepobridge.Config{
		Log:             cfg.Logger,
		UsersRepository: cfg.Repositories.Users,
		TasksRepository: cfg.Repositories.Tasks,
	})

	reportsbridge.AddHttpRoutes(group, reportsbridge.Config{
		Log:             cfg.Logger,
		TasksRepository: cfg.Repositories.Tasks,
		UsersRepository: cfg.Repositories.Users,
	})
}
