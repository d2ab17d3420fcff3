package web

import "strings"

// RouteGroup registers handlers under a shared path prefix with a shared
// middleware stack.
type RouteGroup struct {
	app        *App
	prefix     string
	middleware []Middleware
}

// Group creates a route group rooted at prefix.
func (a *App) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		app:        a,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	allMiddleware := append(append([]Middleware{}, g.middleware...), middleware...)
	g.app.Handle(method, g.prefix+path, handler, allMiddleware...)
}

// Group creates a nested group that inherits this group's prefix and
// middleware.
func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	combined := append(append([]Middleware{}, g.middleware...), middleware...)
	return &RouteGroup{
		app:        g.app,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: combined,
	}
}
