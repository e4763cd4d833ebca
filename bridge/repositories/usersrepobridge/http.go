// Package usersrepobridge contains HTTP route registration and handlers for
// the user directory views.
package usersrepobridge

import (
	"github.com/tasktide/tasktide/bridge/scaffolding/mid"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
)

// Config holds configuration for the User bridge.
type Config struct {
	Log             *logger.Logger
	UsersRepository *usersrepo.Repository
	TasksRepository *tasksrepo.Repository
}

// AddHttpRoutes registers all HTTP routes for User. The directory is an
// admin view.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.UsersRepository, cfg.TasksRepository)

	group.GET("/users", b.httpList, mid.RequireAdmin())
	group.GET("/users/{user_id}", b.httpGetByID, mid.RequireAdmin())
}
