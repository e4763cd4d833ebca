// Package reportsbridge contains HTTP route registration and handlers for
// the report export feeds.
package reportsbridge

import (
	"github.com/tasktide/tasktide/bridge/scaffolding/mid"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
)

// Config holds configuration for the reports bridge.
type Config struct {
	Log             *logger.Logger
	TasksRepository *tasksrepo.Repository
	UsersRepository *usersrepo.Repository
}

// AddHttpRoutes registers all HTTP routes for reports. Exports are admin
// views.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.TasksRepository, cfg.UsersRepository)

	group.GET("/reports/export/tasks", b.httpExportTasks, mid.RequireAdmin())
	group.GET("/reports/export/users", b.httpExportUsers, mid.RequireAdmin())
}
