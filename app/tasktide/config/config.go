// Package config carries the composed application dependencies.
package config

import (
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/repositories/usersrepo"
	"github.com/tasktide/tasktide/sdk/logger"
	"github.com/tasktide/tasktide/sdk/telemetry"
)

// Repositories represents the repositories this instance of the service
// needs.
type Repositories struct {
	Tasks *tasksrepo.Repository
	Users *usersrepo.Repository
}

// TaskTide is the overall configuration for the application.
type TaskTide struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories
}
