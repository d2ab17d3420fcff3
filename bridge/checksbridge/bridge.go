// Package checksbridge exposes liveness and readiness probes.
package checksbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/infrastructure/postgresdb"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// Config holds configuration for the checks bridge.
type Config struct {
	Log   *logger.Logger
	Build string
	Pool  *postgresdb.Pool
}

// AddHttpRoutes registers the probe routes. Both are public.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := &bridge{
		log:   cfg.Log,
		build: cfg.Build,
		pool:  cfg.Pool,
	}

	group.GET("/liveness", b.httpLiveness)
	group.GET("/readiness", b.httpReadiness)
}

type bridge struct {
	log   *logger.Logger
	build string
	pool  *postgresdb.Pool
}

// Liveness reports static process information.
type Liveness struct {
	Status     string `json:"status"`
	Build      string `json:"build"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

// Encode implements the web encoder interface.
func (l Liveness) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func (b *bridge) httpLiveness(ctx context.Context, r *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	return Liveness{
		Status:     "up",
		Build:      b.build,
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
}

// Readiness reports whether the database answers a round trip.
type Readiness struct {
	Status string `json:"status"`
}

// Encode implements the web encoder interface.
func (rd Readiness) Encode() ([]byte, string, error) {
	data, err := json.Marshal(rd)
	return data, "application/json", err
}

func (b *bridge) httpReadiness(ctx context.Context, r *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := postgresdb.StatusCheck(ctx, b.pool); err != nil {
		return errs.Newf(errs.Unavailable, "database not ready: %s", err)
	}

	return Readiness{Status: "ok"}
}
