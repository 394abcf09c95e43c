package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/dto"
)

// PricingHandler exposes the live price preview and the resolved
// pricing context.
type PricingHandler struct {
	*BaseHandler
	engine    *pricing.Engine
	settings  *settings.Service
	customers *customer.Service
}

// NewPricingHandler creates a pricing handler.
func NewPricingHandler(
	base *BaseHandler,
	engine *pricing.Engine,
	settingsSvc *settings.Service,
	customers *customer.Service,
) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		engine:      engine,
		settings:    settingsSvc,
		customers:   customers,
	}
}

// resolveContext resolves the pricing context for the request. Customer
// accounts always resolve their own record; staff may price on behalf
// of any customer via the customerId query param.
func (h *PricingHandler) resolveContext(c *gin.Context) (pricing.Context, error) {
	ctx := c.Request.Context()

	customerID := h.CallerCustomerID(c)
	if h.IsStaff(c) {
		customerID = c.Query("customerId")
	}

	overrides := pricing.CustomerOverrides{}
	if customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			return pricing.Context{}, apperror.NewValidation("invalid customerId format")
		}
		cust, err := h.customers.GetByID(ctx, parsed)
		if err != nil {
			return pricing.Context{}, err
		}
		overrides = cust.PricingOverrides()
	}

	return h.settings.ResolveFor(ctx, overrides)
}

// Preview handles POST /pricing/preview - price one line without
// persisting anything.
func (h *PricingHandler) Preview(c *gin.Context) {
	var req dto.PricePreviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pctx, err := h.resolveContext(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result := h.engine.Price(c.Request.Context(), req.ToLineInput(), pctx.ActiveList)

	h.OK(c, dto.PricePreviewResponse{
		UnitPrice:     result.UnitPrice,
		ExtendedPrice: result.ExtendedPrice,
		ActiveList:    pctx.ActiveList.String(),
	})
}

// Context handles GET /pricing/context - the resolved per-customer
// pricing parameters.
func (h *PricingHandler) Context(c *gin.Context) {
	pctx, err := h.resolveContext(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPricingContext(pctx))
}
