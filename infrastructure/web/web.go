// Package web contains a small web framework extension over the standard
// library mux.
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/luminahq/lumina/sdk/logger"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request within our own
// little mini framework.
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc with additional behavior.
type Middleware func(HandlerFunc) HandlerFunc

// Telemetry represents a function that can call telemetry functions
type Telemetry interface {
	SetTraceID(ctx context.Context) context.Context
	GetTraceID(ctx context.Context) string
}

// App is the entrypoint into our application and what configures our context
// object for each of our http handlers.
type App struct {
	log              *logger.Logger
	mux              *http.ServeMux
	telemetry        Telemetry
	globalMiddleware []Middleware
}

// NewApp creates an App value that handles a set of routes for the
// application. The middleware is applied to every handler registered through
// Handle, outermost first.
func NewApp(log *logger.Logger, telemetry Telemetry, mw ...Middleware) *App {
	return &App{
		log:              log,
		mux:              http.NewServeMux(),
		telemetry:        telemetry,
		globalMiddleware: mw,
	}
}

// ServeHTTP implements the http.Handler interface.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handle sets a handler function for a given HTTP method and path with the
// global middleware plus any route specific middleware applied.
func (a *App) Handle(method string, path string, handlerFunc HandlerFunc, mw ...Middleware) {
	handlerFunc = wrapMiddleware(mw, handlerFunc)
	handlerFunc = wrapMiddleware(a.globalMiddleware, handlerFunc)

	a.mux.HandleFunc(a.pattern(method, path), a.httpFunc(handlerFunc))
}

// HandleNoMid sets a handler function without any middleware applied.
func (a *App) HandleNoMid(method string, path string, handlerFunc HandlerFunc) {
	a.mux.HandleFunc(a.pattern(method, path), a.httpFunc(handlerFunc))
}

// HandleRaw registers a raw http.Handler for when you need full control.
// This does not apply global middleware.
func (a *App) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

func (a *App) pattern(method, path string) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(method), path)
}

func (a *App) httpFunc(handlerFunc HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		resp := handlerFunc(ctx, r)

		if err := Respond(ctx, w, resp); err != nil {
			a.log.ErrorContext(ctx, "web-respond", "err", err)
			return
		}
	}
}
