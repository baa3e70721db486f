package webserver

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/modelworks/workbench/internal/webapi"
	"github.com/modelworks/workbench/web"
)

// registerRoutes sets up API and static routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	webapi.RegisterRoutes(mux, BuildHandlers(cfg))

	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		return fmt.Errorf("failed to create sub filesystem for web/static: %w", err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(staticFS)))
	return nil
}
