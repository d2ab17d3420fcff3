// Package api registers the JSON API routes.
package api

import (
	"github.com/luminahq/lumina/app/lumina/config"
	"github.com/luminahq/lumina/bridge/billingbridge"
	"github.com/luminahq/lumina/bridge/checksbridge"
	"github.com/luminahq/lumina/bridge/dashboardbridge"
	"github.com/luminahq/lumina/bridge/repositories/notesrepobridge"
	"github.com/luminahq/lumina/bridge/repositories/profilesrepobridge"
	"github.com/luminahq/lumina/bridge/repositories/tasksrepobridge"
	"github.com/luminahq/lumina/bridge/repositories/usersrepobridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/infrastructure/web"
)

// AddHandlers mounts every bridge under apiRoute. Routes that need an
// account run behind the bearer-token middleware; the rest stay public.
func AddHandlers(app *web.App, apiRoute string, cfg config.Lumina) {
	public := app.Group(apiRoute)
	authed := public.Group("", mid.Bearer(cfg.Repositories.Sessions))

	checksbridge.AddHttpRoutes(public, checksbridge.Config{
		Log:   cfg.Logger,
		Build: cfg.Build,
		Pool:  cfg.DB,
	})

	usersrepobridge.AddHttpRoutes(public, authed, usersrepobridge.Config{
		Log:         cfg.Logger,
		Users:       cfg.Repositories.Users,
		Sessions:    cfg.Repositories.Sessions,
		Preferences: cfg.Preferences,
		SessionTTL:  cfg.SessionTTL,
	})

	tasksrepobridge.AddHttpRoutes(authed, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	notesrepobridge.AddHttpRoutes(authed, notesrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Notes,
	})

	profilesrepobridge.AddHttpRoutes(public, authed, profilesrepobridge.Config{
		Log:         cfg.Logger,
		Preferences: cfg.Preferences,
	})

	dashboardbridge.AddHttpRoutes(authed, dashboardbridge.Config{
		Log:   cfg.Logger,
		Tasks: cfg.Repositories.Tasks,
		Notes: cfg.Repositories.Notes,
	})

	billingbridge.AddHttpRoutes(public, authed, billingbridge.Config{
		Log:      cfg.Logger,
		Users:    cfg.Repositories.Users,
		Checkout: cfg.Checkout,
	})
}
