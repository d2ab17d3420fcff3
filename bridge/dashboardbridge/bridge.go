// Package dashboardbridge serves the aggregated dashboard overview.
package dashboardbridge

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// recentLimit bounds the task and note previews on the overview.
const recentLimit = 3

// Config holds configuration for the dashboard bridge.
type Config struct {
	Log   *logger.Logger
	Tasks *tasksrepo.Repository
	Notes *notesrepo.Repository
}

// AddHttpRoutes registers the dashboard route. The group is expected to
// carry the auth middleware.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := &bridge{
		log:   cfg.Log,
		tasks: cfg.Tasks,
		notes: cfg.Notes,
	}

	group.GET("/dashboard", b.httpOverview)
}

type bridge struct {
	log   *logger.Logger
	tasks *tasksrepo.Repository
	notes *notesrepo.Repository
}

// Stats carries task counts plus the derived completion ratio.
type Stats struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	CompletionPercentage int `json:"completionPercentage"`
}

// Overview is the dashboard response model.
type Overview struct {
	RecentTasks []tasksrepo.Task `json:"recentTasks"`
	RecentNotes []notesrepo.Note `json:"recentNotes"`
	Stats       Stats            `json:"stats"`
}

// Encode implements the encoder interface.
func (o Overview) Encode() ([]byte, string, error) {
	data, err := json.Marshal(o)
	return data, "application/json", err
}

func (b *bridge) httpOverview(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	recentTasks, err := b.tasks.ListActive(ctx, userID, recentLimit)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	stats, err := b.tasks.Stats(ctx, userID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	recentNotes, err := b.notes.ListRecent(ctx, userID, recentLimit)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	if recentTasks == nil {
		recentTasks = []tasksrepo.Task{}
	}
	if recentNotes == nil {
		recentNotes = []notesrepo.Note{}
	}

	return Overview{
		RecentTasks: recentTasks,
		RecentNotes: recentNotes,
		Stats: Stats{
			Total:                stats.Total,
			Completed:            stats.Completed,
			CompletionPercentage: stats.CompletionPercentage(),
		},
	}
}
