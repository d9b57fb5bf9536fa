package ui

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"edaviz/ui/middleware"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() error {
	if s.config.MaxBytes > 0 {
		// the whole capped body fits in memory, so uploads never spool to temp files
		s.router.MaxMultipartMemory = s.config.MaxBytes + middleware.MultipartSlack
	}

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	log.Printf("[Static] Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}
