// Package site serves the embedded marketing pages at the web root.
package site

import (
	"embed"
	"fmt"

	"github.com/luminahq/lumina/infrastructure/web"
)

//go:embed static
var staticFiles embed.FS

// AddHandlers mounts the landing site at /.
func AddHandlers(app *web.App) *web.App {
	if err := app.FileServerSite(staticFiles, "static", "/"); err != nil {
		fmt.Printf("Error setting up landing site server: %v\n", err)
		return app
	}

	return app
}
