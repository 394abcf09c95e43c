package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/dto"
)

// QuoteHandler provides HTTP handlers for the quote lifecycle.
// Customer accounts only see their own quotes; staff see everything.
type QuoteHandler struct {
	*BaseHandler
	service *quote.Service
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(base *BaseHandler, service *quote.Service) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ownCustomerID parses the caller's linked customer record id.
func (h *QuoteHandler) ownCustomerID(c *gin.Context) (id.ID, error) {
	raw := h.CallerCustomerID(c)
	if raw == "" {
		return id.Nil(), apperror.NewForbidden("account has no linked customer record")
	}
	return id.Parse(raw)
}

// loadOwned fetches a quote and enforces ownership. Quotes of other
// customers read as not found, never as forbidden.
func (h *QuoteHandler) loadOwned(c *gin.Context, docID id.ID) (*quote.Quote, error) {
	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		return nil, err
	}

	if !h.IsStaff(c) && doc.CustomerID.String() != h.CallerCustomerID(c) {
		return nil, apperror.NewNotFound("quote", docID.String())
	}
	return doc, nil
}

// List handles GET /quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := quote.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if h.IsStaff(c) {
		if raw := c.Query("customerId"); raw != "" {
			parsed, err := id.Parse(raw)
			if err != nil {
				h.Error(c, apperror.NewValidation("invalid customerId format"))
				return
			}
			filter.CustomerID = &parsed
		}
	} else {
		own, err := h.ownCustomerID(c)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.CustomerID = &own
	}

	if raw := c.Query("status"); raw != "" {
		status := quote.Status(raw)
		if !status.IsValid() {
			h.Error(c, apperror.NewValidation("unknown quote status").WithDetail("status", raw))
			return
		}
		filter.Status = &status
	}

	if raw := c.Query("dateFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom format (RFC3339 expected)"))
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("dateTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo format (RFC3339 expected)"))
			return
		}
		filter.DateTo = &to
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	includeAdmin := h.IsStaff(c)
	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromQuote(item, includeAdmin)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Create handles POST /quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var customerID id.ID
	if h.IsStaff(c) {
		if req.CustomerID == "" {
			h.Error(c, apperror.NewValidation("customerId is required").WithDetail("field", "customerId"))
			return
		}
		parsed, err := id.Parse(req.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		customerID = parsed
	} else {
		own, err := h.ownCustomerID(c)
		if err != nil {
			h.Error(c, err)
			return
		}
		customerID = own
	}

	doc := quote.NewQuote(customerID)
	doc.JobReference = req.JobReference
	doc.CustomerNotes = req.CustomerNotes
	doc.Attributes = req.Attributes
	doc.Lines = dto.ToLines(req.Lines)
	if req.Date != nil {
		doc.Date = *req.Date
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromQuote(doc, h.IsStaff(c)))
}

// Get handles GET /quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.loadOwned(c, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuote(doc, h.IsStaff(c)))
}

// Update handles PUT /quotes/:id. Discount and admin notes only stick
// for staff callers.
func (h *QuoteHandler) Update(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.loadOwned(c, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc.JobReference = req.JobReference
	doc.CustomerNotes = req.CustomerNotes
	doc.Attributes = req.Attributes
	doc.Lines = dto.ToLines(req.Lines)
	doc.Version = req.Version

	if h.IsStaff(c) {
		if req.AdminNotes != nil {
			doc.AdminNotes = *req.AdminNotes
		}
		if req.DiscountPercent != nil {
			doc.DiscountPercent = *req.DiscountPercent
		}
	}

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuote(doc, h.IsStaff(c)))
}

// Delete handles DELETE /quotes/:id. Only drafts may be removed.
func (h *QuoteHandler) Delete(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if _, err := h.loadOwned(c, docID); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Submit handles POST /quotes/:id/submit - a draft moves to review or
// straight to ready.
func (h *QuoteHandler) Submit(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if _, err := h.loadOwned(c, docID); err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Submit(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuote(doc, h.IsStaff(c)))
}

// Transition handles POST /quotes/:id/transition. Customers may only
// request an order or reject their own quote; everything else is staff.
func (h *QuoteHandler) Transition(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.TransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.loadOwned(c, docID); err != nil {
		h.Error(c, err)
		return
	}

	if !h.IsStaff(c) &&
		req.Status != quote.StatusOrderRequested &&
		req.Status != quote.StatusRejected {
		h.Error(c, apperror.NewForbidden("transition requires staff role").
			WithDetail("status", string(req.Status)))
		return
	}

	doc, err := h.service.Transition(c.Request.Context(), docID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuote(doc, h.IsStaff(c)))
}

// Recalculate handles POST /quotes/:id/recalculate - staff reprice
// after catalog or settings changes.
func (h *QuoteHandler) Recalculate(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Recalculate(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuote(doc, true))
}
