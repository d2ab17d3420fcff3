// Package tasksrepobridge contains HTTP handlers for task operations.
package tasksrepobridge

import (
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// Config holds configuration for the Task bridge.
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
}

// AddHttpRoutes registers all HTTP routes for tasks. The group is expected
// to carry the auth middleware.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/tasks", b.httpList)
	group.GET("/tasks/stats", b.httpStats)
	group.GET("/tasks/{task_id}", b.httpGetByID)
	group.POST("/tasks", b.httpCreate)
	group.PUT("/tasks/{task_id}", b.httpUpdate)
	group.DELETE("/tasks/{task_id}", b.httpDelete)
}

type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, taskRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		taskRepository: taskRepository,
	}
}
