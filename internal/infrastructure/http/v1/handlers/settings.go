package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/dto"
)

// SettingsHandler manages the global pricing configuration. Staff only.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSettings(s))
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(s)

	if err := h.service.Update(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSettings(s))
}
