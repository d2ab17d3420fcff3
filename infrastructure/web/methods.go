package web

func (a *App) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle("GET", path, handler, middleware...)
}

func (a *App) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle("POST", path, handler, middleware...)
}

func (a *App) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle("PUT", path, handler, middleware...)
}

func (a *App) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	a.Handle("DELETE", path, handler, middleware...)
}

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle("GET", path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle("POST", path, handler, middleware...)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle("PUT", path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle("DELETE", path, handler, middleware...)
}
