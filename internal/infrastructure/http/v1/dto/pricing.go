package dto

import (
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
)

// --- Price preview ---

// PricePreviewRequest prices a single line without persisting anything.
// The configurator calls this on every dimension change.
type PricePreviewRequest struct {
	WidthMM  int `json:"widthMm" binding:"required,min=1"`
	HeightMM int `json:"heightMm" binding:"required,min=1"`

	Quantity int `json:"quantity" binding:"required,min=1"`

	HorizontalBars int `json:"horizontalBars" binding:"min=0"`
	VerticalBars   int `json:"verticalBars" binding:"min=0"`

	SpacerType string `json:"spacerType"`
	SpacerCode string `json:"spacerCode"`
	SoloSpacer bool   `json:"soloSpacer"`

	BaseGridUnitPrice   types.Money `json:"baseGridUnitPrice"`
	BaseSpacerUnitPrice types.Money `json:"baseSpacerUnitPrice"`
}

// ToLineInput converts the request to engine input.
func (r *PricePreviewRequest) ToLineInput() pricing.LineInput {
	return pricing.LineInput{
		WidthMM:             r.WidthMM,
		HeightMM:            r.HeightMM,
		Quantity:            r.Quantity,
		HorizontalBars:      r.HorizontalBars,
		VerticalBars:        r.VerticalBars,
		SpacerType:          r.SpacerType,
		SpacerCode:          r.SpacerCode,
		SoloSpacer:          r.SoloSpacer,
		BaseGridUnitPrice:   r.BaseGridUnitPrice,
		BaseSpacerUnitPrice: r.BaseSpacerUnitPrice,
	}
}

// PricePreviewResponse carries the computed prices and which list
// produced them.
type PricePreviewResponse struct {
	UnitPrice     types.Money `json:"unitPrice"`
	ExtendedPrice types.Money `json:"extendedPrice"`
	ActiveList    string      `json:"activeList"`
}

// --- Pricing context ---

// PricingContextResponse is the resolved pricing context for a customer.
type PricingContextResponse struct {
	ActiveList   string      `json:"activeList"`
	DeliveryCost types.Money `json:"deliveryCost"`
	TariffName   string      `json:"tariffName"`
	Detraction   types.Money `json:"detraction"`
}

// FromPricingContext maps the resolved context.
func FromPricingContext(pctx pricing.Context) PricingContextResponse {
	return PricingContextResponse{
		ActiveList:   pctx.ActiveList.String(),
		DeliveryCost: pctx.DeliveryCost,
		TariffName:   pctx.TariffName,
		Detraction:   pctx.Detraction,
	}
}

// --- Catalog feed ---

// CatalogCodeResponse is a direct price lookup result.
type CatalogCodeResponse struct {
	Code  string      `json:"code"`
	Price types.Money `json:"price"`
}

// CatalogStatusResponse reports the state of the in-memory price index.
type CatalogStatusResponse struct {
	Loaded    bool   `json:"loaded"`
	Entries   int    `json:"entries"`
	Misses    int64  `json:"misses"`
	LastError string `json:"lastError,omitempty"`
}

// CatalogTreeResponse is the browse hierarchy:
// category -> model -> size -> finish.
type CatalogTreeResponse struct {
	Tree catalog.Tree `json:"tree"`
}
