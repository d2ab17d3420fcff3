// Package config collects the dependencies the lumina application wires
// together at startup.
package config

import (
	"time"

	"github.com/luminahq/lumina/core/preferences"
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/core/repositories/profilesrepo"
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/core/repositories/usersessionsrepo"
	"github.com/luminahq/lumina/infrastructure/payments/stripecheckout"
	"github.com/luminahq/lumina/infrastructure/postgresdb"
	"github.com/luminahq/lumina/sdk/logger"
	"github.com/luminahq/lumina/sdk/telemetry"
)

// Repositories holds every repository this instance of lumina serves.
type Repositories struct {
	Users    *usersrepo.Repository
	Sessions *usersessionsrepo.Repository
	Tasks    *tasksrepo.Repository
	Notes    *notesrepo.Repository
	Profiles *profilesrepo.Repository
}

// Lumina is the overall configuration for the lumina application.
type Lumina struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	DB           *postgresdb.Pool
	Repositories Repositories
	Preferences  *preferences.Store
	Checkout     *stripecheckout.Client
	SessionTTL   time.Duration
}
