package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/dto"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/invoicing/fic"
)

// DeliveryNoteHandler issues transport documents through the invoicing
// sync. Staff only.
type DeliveryNoteHandler struct {
	*BaseHandler
	sync *fic.SyncService
}

// NewDeliveryNoteHandler creates a delivery note handler.
func NewDeliveryNoteHandler(base *BaseHandler, sync *fic.SyncService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{
		BaseHandler: base,
		sync:        sync,
	}
}

// Create handles POST /delivery-notes.
func (h *DeliveryNoteHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	quoteIDs := make([]id.ID, len(req.QuoteIDs))
	for i, raw := range req.QuoteIDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid quote id format").WithDetail("value", raw))
			return
		}
		quoteIDs[i] = parsed
	}

	ddt, err := h.sync.CreateDeliveryNote(c.Request.Context(), fic.DeliveryNoteInput{
		QuoteIDs:     quoteIDs,
		Packages:     req.Packages,
		WeightKG:     req.WeightKG,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.DeliveryNoteResponse{
		FICDocumentID: ddt.ID,
		URL:           ddt.URL,
		Quotes:        len(quoteIDs),
	})
}
