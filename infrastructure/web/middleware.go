package web

import (
	"context"
	"net/http"
)

type writerKey int

const key writerKey = 1

func setWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, key, w)
}

// GetWriter returns the underlying response writer for the request. Middleware
// that needs to set headers directly (CORS) uses this.
func GetWriter(ctx context.Context) http.ResponseWriter {
	v, ok := ctx.Value(key).(http.ResponseWriter)
	if !ok {
		return nil
	}
	return v
}

// wrapMiddleware creates a new handler by wrapping middleware around a final
// handler. The middlewares' Handlers will be executed by requests in the order
// they are provided.
func wrapMiddleware(mw []Middleware, handler HandlerFunc) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}
