package account

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/linkpage/internal/models"
	"github.com/mx-space/linkpage/internal/pkg/response"
)

type SetPlanDTO struct {
	Plan models.Plan `json:"plan" binding:"required,oneof=free pro"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the read-only account view on the editor group
// (/profiles/:handle) and the plan write on the billing group, which must
// be guarded by a credential editors do not hold.
func (h *Handler) RegisterRoutes(editor, billing *gin.RouterGroup) {
	editor.GET("/account", h.get)
	billing.PUT("/accounts/:handle", h.setPlan)
}

// GET /profiles/:handle/account
func (h *Handler) get(c *gin.Context) {
	acc, err := h.svc.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, acc)
}

// PUT /billing/accounts/:handle
func (h *Handler) setPlan(c *gin.Context) {
	var dto SetPlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	acc, err := h.svc.SetPlan(c.Request.Context(), c.Param("handle"), dto.Plan)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, acc)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidHandle), errors.Is(err, ErrInvalidPlan):
		response.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, err)
	}
}
