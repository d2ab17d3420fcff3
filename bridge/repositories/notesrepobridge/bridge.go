// Package notesrepobridge contains HTTP handlers for note operations.
package notesrepobridge

import (
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// Config holds configuration for the Note bridge.
type Config struct {
	Log        *logger.Logger
	Repository *notesrepo.Repository
}

// AddHttpRoutes registers all HTTP routes for notes. The group is expected
// to carry the auth middleware.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/notes", b.httpList)
	group.GET("/notes/{note_id}", b.httpGetByID)
	group.POST("/notes", b.httpCreate)
	group.PUT("/notes/{note_id}", b.httpUpdate)
	group.DELETE("/notes/{note_id}", b.httpDelete)
}

type bridge struct {
	log            *logger.Logger
	noteRepository *notesrepo.Repository
}

func newBridge(log *logger.Logger, noteRepository *notesrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		noteRepository: noteRepository,
	}
}
