// Package tasksrepobridge contains HTTP route registration and handlers for
// Task.
package tasksrepobridge

import (
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/infrastructure/web"
	"github.com/tasktide/tasktide/sdk/logger"
)

// Config holds configuration for the Task bridge.
type Config struct {
	Log             *logger.Logger
	TasksRepository *tasksrepo.Repository
	UsersRepository *usersrepo.Repository
}

// AddHttpRoutes registers all HTTP routes for Task. The dashboard routes use
// literal segments, which ServeMux ranks above the {task_id} wildcard.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.TasksRepository, cfg.UsersRepository)

	group.GET("/tasks", b.httpList)
	group.GET("/tasks/dashboard-data", b.httpDashboardData)
	group.GET("/tasks/user-dashboard-data", b.httpUserDashboardData)
	group.GET("/tasks/{task_id}", b.httpGetByID)
	group.POST("/tasks", b.httpCreate)
	group.PUT("/tasks/{task_id}", b.httpUpdate)
	group.DELETE("/tasks/{task_id}", b.httpDelete)
	group.PUT("/tasks/{task_id}/status", b.httpUpdateStatus)
	group.PUT("/tasks/{task_id}/todo", b.httpUpdateChecklist)
}
