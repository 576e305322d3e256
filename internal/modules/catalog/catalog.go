// Package catalog serves the static appearance registries to editors.
package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/pkg/response"
	"github.com/mx-space/linkpage/internal/registry"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/registry")
	g.GET("/fonts", h.fonts)
	g.GET("/patterns", h.patterns)
	g.GET("/gradients", h.gradients)
	g.GET("/themes", h.themes)
	g.GET("/icons", h.icons)
}

func (h *Handler) fonts(c *gin.Context) { response.OK(c, registry.Fonts()) }

func (h *Handler) patterns(c *gin.Context) { response.OK(c, registry.Patterns()) }

func (h *Handler) gradients(c *gin.Context) { response.OK(c, registry.GradientPresets()) }

// GET /registry/themes?category=dark
func (h *Handler) themes(c *gin.Context) {
	presets := registry.ThemePresets()
	if category := c.Query("category"); category != "" {
		filtered := presets[:0]
		for _, p := range presets {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		presets = filtered
	}
	response.OK(c, presets)
}

// GET /registry/icons returns the link icons and the social platforms.
func (h *Handler) icons(c *gin.Context) {
	response.OK(c, gin.H{
		"icons":     registry.Icons(),
		"platforms": registry.Platforms(),
	})
}
