// Package profilesrepobridge contains HTTP handlers for account preferences
// and the theme/avatar catalogs.
package profilesrepobridge

import (
	"github.com/luminahq/lumina/core/preferences"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// Config holds configuration for the preferences bridge.
type Config struct {
	Log         *logger.Logger
	Preferences *preferences.Store
}

// AddHttpRoutes registers the preferences routes. The catalogs are public;
// the profile routes require a session.
func AddHttpRoutes(public *web.RouteGroup, authed *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Preferences)

	public.GET("/themes", b.httpThemes)
	public.GET("/avatars", b.httpAvatars)

	authed.GET("/profile", b.httpGet)
	authed.PUT("/profile/theme", b.httpSetTheme)
	authed.PUT("/profile/avatar", b.httpSetAvatar)
}

type bridge struct {
	log         *logger.Logger
	preferences *preferences.Store
}

func newBridge(log *logger.Logger, preferences *preferences.Store) *bridge {
	return &bridge{
		log:         log,
		preferences: preferences,
	}
}
