// Package usersrepobridge contains HTTP handlers for signup, login and the
// current-user lookup.
package usersrepobridge

import (
	"time"

	"github.com/luminahq/lumina/core/preferences"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/core/repositories/usersessionsrepo"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// Config holds configuration for the auth bridge.
type Config struct {
	Log         *logger.Logger
	Users       *usersrepo.Repository
	Sessions    *usersessionsrepo.Repository
	Preferences *preferences.Store
	SessionTTL  time.Duration
}

// AddHttpRoutes registers the auth routes. Signup and login are public;
// logout and the current-user lookup require a session.
func AddHttpRoutes(public *web.RouteGroup, authed *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	public.POST("/auth/signup", b.httpSignup)
	public.POST("/auth/login", b.httpLogin)

	authed.POST("/auth/logout", b.httpLogout)
	authed.GET("/me", b.httpMe)
}

type bridge struct {
	log         *logger.Logger
	users       *usersrepo.Repository
	sessions    *usersessionsrepo.Repository
	preferences *preferences.Store
	sessionTTL  time.Duration
}

func newBridge(cfg Config) *bridge {
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &bridge{
		log:         cfg.Log,
		users:       cfg.Users,
		sessions:    cfg.Sessions,
		preferences: cfg.Preferences,
		sessionTTL:  ttl,
	}
}
