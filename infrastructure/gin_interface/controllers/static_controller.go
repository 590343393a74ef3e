package controllers

import (
	"os"
	"path/filepath"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/gin-gonic/gin"
)

type StaticController interface {
	RegisterRoutes(g *gin.Engine)
}

type staticController struct {
	logger    outbound.LoggerPort
	staticDir string
}

func NewStaticController(logger outbound.LoggerPort, staticDir string) StaticController {
	return &staticController{
		logger:    logger,
		staticDir: staticDir,
	}
}

// RegisterRoutes installs the catch-all: existing files under the static
// directory are served directly, every other unmatched path falls back to
// the single-page entry point.
func (s *staticController) RegisterRoutes(g *gin.Engine) {
	g.NoRoute(func(c *gin.Context) {
		requested := filepath.Join(s.staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(filepath.Join(s.staticDir, "index.html"))
	})
}
