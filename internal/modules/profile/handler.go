package profile

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/pkg/response"
	coreprofile "github.com/mx-space/linkpage/internal/profile"
)

type CreateLinkDTO struct {
	Title    string           `json:"title"    binding:"required"`
	Subtitle string           `json:"subtitle"`
	URL      string           `json:"url"`
	Icon     string           `json:"icon"`
	Type     models.LinkType  `json:"type"     binding:"omitempty,oneof=standard commerce widget"`
	Featured bool             `json:"featured"`
	Active   *bool            `json:"active"`
	Schedule *models.Schedule `json:"schedule"`
	Commerce *models.Commerce `json:"commerce"`
	Widget   *models.Widget   `json:"widget"`
}

func (d CreateLinkDTO) draft() models.Link {
	active := true
	if d.Active != nil {
		active = *d.Active
	}
	typ := d.Type
	if typ == "" {
		typ = models.LinkStandard
	}
	return models.Link{
		Title:    d.Title,
		Subtitle: d.Subtitle,
		URL:      d.URL,
		Icon:     d.Icon,
		Type:     typ,
		Featured: d.Featured,
		Active:   active,
		Schedule: d.Schedule,
		Commerce: d.Commerce,
		Widget:   d.Widget,
	}
}

type ApplyThemeDTO struct {
	ThemeID string `json:"themeId" binding:"required"`
}

type ReorderDTO struct {
	IDs []string `json:"ids" binding:"required"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the read-only page on public and the editing API on
// editor, which must be scoped to /profiles/:handle and guarded by auth.
func (h *Handler) RegisterRoutes(public, editor *gin.RouterGroup) {
	public.GET("/pages/:handle", h.page)

	editor.GET("", h.snapshot)
	editor.PATCH("", h.updateDetails)
	editor.GET("/preview", h.preview)

	a := editor.Group("/appearance")
	a.PATCH("", h.updateAppearance)
	a.PUT("/colors", h.replaceColors)
	a.PUT("/layout", h.replaceLayout)
	a.PUT("/gradient", h.replaceGradient)
	a.POST("/theme", h.applyTheme)
	a.POST("/reset", h.resetAppearance)

	editor.PUT("/socials", h.replaceSocials)

	l := editor.Group("/links")
	l.POST("", h.addLink)
	l.PUT("/order", h.reorderLinks)
	l.PATCH("/:id", h.updateLink)
	l.DELETE("/:id", h.deleteLink)
}

// GET /pages/:handle
func (h *Handler) page(c *gin.Context) {
	d, err := h.svc.Page(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, d)
}

// GET /profiles/:handle
func (h *Handler) snapshot(c *gin.Context) {
	doc, err := h.svc.Snapshot(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, doc)
}

// GET /profiles/:handle/preview?at=2024-05-01T10:00:00Z
func (h *Handler) preview(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "at must be an RFC3339 timestamp")
			return
		}
		at = t
	}
	d, err := h.svc.Preview(c.Request.Context(), c.Param("handle"), at)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, d)
}

// PATCH /profiles/:handle
func (h *Handler) updateDetails(c *gin.Context) {
	var patch coreprofile.DetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.UpdateDetails(c.Request.Context(), c.Param("handle"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// PATCH /profiles/:handle/appearance
func (h *Handler) updateAppearance(c *gin.Context) {
	var patch coreprofile.AppearancePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.UpdateAppearance(c.Request.Context(), c.Param("handle"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// PUT /profiles/:handle/appearance/colors
func (h *Handler) replaceColors(c *gin.Context) {
	var colors models.Palette
	if err := c.ShouldBindJSON(&colors); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ReplaceColors(c.Request.Context(), c.Param("handle"), colors)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// PUT /profiles/:handle/appearance/layout
func (h *Handler) replaceLayout(c *gin.Context) {
	var layout models.Layout
	if err := c.ShouldBindJSON(&layout); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ReplaceLayout(c.Request.Context(), c.Param("handle"), layout)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// PUT /profiles/:handle/appearance/gradient
func (h *Handler) replaceGradient(c *gin.Context) {
	var gradient models.Gradient
	if err := c.ShouldBindJSON(&gradient); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ReplaceGradient(c.Request.Context(), c.Param("handle"), gradient)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// POST /profiles/:handle/appearance/theme
func (h *Handler) applyTheme(c *gin.Context) {
	var dto ApplyThemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ApplyTheme(c.Request.Context(), c.Param("handle"), dto.ThemeID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// POST /profiles/:handle/appearance/reset
func (h *Handler) resetAppearance(c *gin.Context) {
	out, err := h.svc.ResetAppearance(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// PUT /profiles/:handle/socials
func (h *Handler) replaceSocials(c *gin.Context) {
	var socials models.Socials
	if err := c.ShouldBindJSON(&socials); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ReplaceSocials(c.Request.Context(), c.Param("handle"), socials)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, out)
}

// POST /profiles/:handle/links
func (h *Handler) addLink(c *gin.Context) {
	var dto CreateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	l, err := h.svc.AddLink(c.Request.Context(), c.Param("handle"), dto.draft())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, l)
}

// PATCH /profiles/:handle/links/:id
func (h *Handler) updateLink(c *gin.Context) {
	var patch coreprofile.LinkPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if patch.Type != nil {
		switch *patch.Type {
		case models.LinkStandard, models.LinkCommerce, models.LinkWidget:
		default:
			response.BadRequest(c, "unknown link type")
			return
		}
	}
	l, err := h.svc.UpdateLink(c.Request.Context(), c.Param("handle"), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, l)
}

// DELETE /profiles/:handle/links/:id
func (h *Handler) deleteLink(c *gin.Context) {
	if err := h.svc.DeleteLink(c.Request.Context(), c.Param("handle"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

// PUT /profiles/:handle/links/order
func (h *Handler) reorderLinks(c *gin.Context) {
	var dto ReorderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	links, err := h.svc.ReorderLinks(c.Request.Context(), c.Param("handle"), dto.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, links)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidHandle):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrThemeNotFound),
		errors.Is(err, coreprofile.ErrLinkNotFound):
		response.NotFoundMsg(c, err.Error())
	case errors.Is(err, ErrProRequired):
		response.PaymentRequired(c, err.Error())
	case errors.Is(err, coreprofile.ErrInvariantViolation),
		errors.Is(err, coreprofile.ErrInvalidAppearance):
		response.UnprocessableEntity(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, err)
	}
}
