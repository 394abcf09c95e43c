package dto

import (
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
)

// --- Line DTOs ---

// QuoteLineRequest is one configured line in a create/update request.
type QuoteLineRequest struct {
	Category string `json:"category"`
	Model    string `json:"model"`
	Size     string `json:"size"`
	Finish   string `json:"finish"`

	WidthMM  int `json:"widthMm" binding:"required,min=1"`
	HeightMM int `json:"heightMm" binding:"required,min=1"`

	HorizontalBars int `json:"horizontalBars" binding:"min=0"`
	VerticalBars   int `json:"verticalBars" binding:"min=0"`

	Quantity int `json:"quantity" binding:"required,min=1"`

	SpacerType string `json:"spacerType"`
	SpacerCode string `json:"spacerCode"`
	SoloSpacer bool   `json:"soloSpacer"`

	Curved         bool `json:"curved"`
	Notch          bool `json:"notch"`
	NonEquidistant bool `json:"nonEquidistant"`

	Description    string `json:"description"`
	ValidationNote string `json:"validationNote"`

	BaseGridUnitPrice   types.Money `json:"baseGridUnitPrice"`
	BaseSpacerUnitPrice types.Money `json:"baseSpacerUnitPrice"`
}

// ToLine converts the request line to a domain line. Prices are left
// zero; the quote service recomputes them on every save.
func (r *QuoteLineRequest) ToLine(lineNo int) quote.Line {
	return quote.Line{
		LineID:              id.New(),
		LineNo:              lineNo,
		Category:            r.Category,
		Model:               r.Model,
		Size:                r.Size,
		Finish:              r.Finish,
		WidthMM:             r.WidthMM,
		HeightMM:            r.HeightMM,
		HorizontalBars:      r.HorizontalBars,
		VerticalBars:        r.VerticalBars,
		Quantity:            r.Quantity,
		SpacerType:          r.SpacerType,
		SpacerCode:          r.SpacerCode,
		SoloSpacer:          r.SoloSpacer,
		Curved:              r.Curved,
		Notch:               r.Notch,
		NonEquidistant:      r.NonEquidistant,
		Description:         r.Description,
		ValidationNote:      r.ValidationNote,
		BaseGridUnitPrice:   r.BaseGridUnitPrice,
		BaseSpacerUnitPrice: r.BaseSpacerUnitPrice,
	}
}

// ToLines converts a request line slice, assigning sequential numbers.
func ToLines(reqs []QuoteLineRequest) []quote.Line {
	lines := make([]quote.Line, len(reqs))
	for i, r := range reqs {
		lines[i] = r.ToLine(i + 1)
	}
	return lines
}

// QuoteLineResponse is one priced line.
type QuoteLineResponse struct {
	LineID         string `json:"lineId"`
	LineNo         int    `json:"lineNo"`
	Category       string `json:"category"`
	Model          string `json:"model"`
	Size           string `json:"size"`
	Finish         string `json:"finish"`
	WidthMM        int    `json:"widthMm"`
	HeightMM       int    `json:"heightMm"`
	HorizontalBars int    `json:"horizontalBars"`
	VerticalBars   int    `json:"verticalBars"`
	Quantity       int    `json:"quantity"`
	SpacerType     string `json:"spacerType"`
	SpacerCode     string `json:"spacerCode,omitempty"`
	SoloSpacer     bool   `json:"soloSpacer"`
	Curved         bool   `json:"curved"`
	Notch          bool   `json:"notch"`
	NonEquidistant bool   `json:"nonEquidistant"`
	Description    string `json:"description,omitempty"`
	ValidationNote string `json:"validationNote,omitempty"`

	UnitPrice  types.Money `json:"unitPrice"`
	TotalPrice types.Money `json:"totalPrice"`
}

// FromLine creates a line response.
func FromLine(l quote.Line) QuoteLineResponse {
	return QuoteLineResponse{
		LineID:         l.LineID.String(),
		LineNo:         l.LineNo,
		Category:       l.Category,
		Model:          l.Model,
		Size:           l.Size,
		Finish:         l.Finish,
		WidthMM:        l.WidthMM,
		HeightMM:       l.HeightMM,
		HorizontalBars: l.HorizontalBars,
		VerticalBars:   l.VerticalBars,
		Quantity:       l.Quantity,
		SpacerType:     l.SpacerType,
		SpacerCode:     l.SpacerCode,
		SoloSpacer:     l.SoloSpacer,
		Curved:         l.Curved,
		Notch:          l.Notch,
		NonEquidistant: l.NonEquidistant,
		Description:    l.Description,
		ValidationNote: l.ValidationNote,
		UnitPrice:      l.UnitPrice,
		TotalPrice:     l.TotalPrice,
	}
}

// --- Request DTOs ---

// CreateQuoteRequest is the request body for creating a quote.
// CustomerID is staff-only: customer accounts always create quotes for
// their own linked customer record.
type CreateQuoteRequest struct {
	CustomerID    string             `json:"customerId"`
	JobReference  string             `json:"jobReference"`
	CustomerNotes string             `json:"customerNotes"`
	Date          *time.Time         `json:"date"`
	Lines         []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
	Attributes    entity.Attributes  `json:"attributes"`
}

// UpdateQuoteRequest is the request body for updating a quote.
// DiscountPercent and AdminNotes are only honored for staff callers.
type UpdateQuoteRequest struct {
	JobReference    string             `json:"jobReference"`
	CustomerNotes   string             `json:"customerNotes"`
	AdminNotes      *string            `json:"adminNotes"`
	DiscountPercent *types.Money       `json:"discountPercent"`
	Lines           []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
	Attributes      entity.Attributes  `json:"attributes"`
	Version         int                `json:"version" binding:"required"`
}

// TransitionRequest moves a quote to a target lifecycle state.
type TransitionRequest struct {
	Status quote.Status `json:"status" binding:"required"`
}

// --- Delivery notes ---

// CreateDeliveryNoteRequest issues a DDT covering one or more quotes.
type CreateDeliveryNoteRequest struct {
	QuoteIDs     []string  `json:"quoteIds" binding:"required,min=1"`
	Packages     int       `json:"packages" binding:"required,min=1"`
	WeightKG     float64   `json:"weightKg"`
	DeliveryDate time.Time `json:"deliveryDate" binding:"required"`
}

// DeliveryNoteResponse reports the issued transport document.
type DeliveryNoteResponse struct {
	FICDocumentID int64  `json:"ficDocumentId"`
	URL           string `json:"url,omitempty"`
	Quotes        int    `json:"quotes"`
}

// --- Response DTOs ---

// QuoteResponse is the response body for a quote with lines.
type QuoteResponse struct {
	DocumentResponse

	CustomerID   string       `json:"customerId"`
	JobReference string       `json:"jobReference,omitempty"`
	Status       quote.Status `json:"status"`
	ActiveList   string       `json:"activeList"`

	Subtotal        types.Money `json:"subtotal"`
	DiscountPercent types.Money `json:"discountPercent"`
	Detraction      types.Money `json:"detraction"`
	DeliveryCost    types.Money `json:"deliveryCost"`
	TariffName      string      `json:"tariffName,omitempty"`
	DiscountedTotal types.Money `json:"discountedTotal"`

	CustomerNotes string `json:"customerNotes,omitempty"`
	AdminNotes    string `json:"adminNotes,omitempty"`

	Attachments quote.Attachments `json:"attachments,omitempty"`

	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	Packages             int        `json:"packages,omitempty"`

	FICOrderID  *int64 `json:"ficOrderId,omitempty"`
	FICOrderURL string `json:"ficOrderUrl,omitempty"`
	FICDDTID    *int64 `json:"ficDdtId,omitempty"`
	FICDDTURL   string `json:"ficDdtUrl,omitempty"`

	Lines []QuoteLineResponse `json:"lines,omitempty"`
}

// FromQuote creates a response DTO from a domain quote. AdminNotes are
// a staff-side channel and are stripped for customer callers.
func FromQuote(q *quote.Quote, includeAdmin bool) *QuoteResponse {
	resp := &QuoteResponse{
		DocumentResponse: FromDocument(q.Document),
		CustomerID:       q.CustomerID.String(),
		JobReference:     q.JobReference,
		Status:           q.Status,
		ActiveList:       q.ActiveList,

		Subtotal:        q.Subtotal,
		DiscountPercent: q.DiscountPercent,
		Detraction:      q.Detraction,
		DeliveryCost:    q.DeliveryCost,
		TariffName:      q.TariffName,
		DiscountedTotal: q.DiscountedTotal,

		CustomerNotes: q.CustomerNotes,
		Attachments:   q.Attachments,

		ExpectedDeliveryDate: q.ExpectedDeliveryDate,
		Packages:             q.Packages,

		FICOrderID:  q.FICOrderID,
		FICOrderURL: q.FICOrderURL,
		FICDDTID:    q.FICDDTID,
		FICDDTURL:   q.FICDDTURL,
	}

	if includeAdmin {
		resp.AdminNotes = q.AdminNotes
	}

	if q.Lines != nil {
		resp.Lines = make([]QuoteLineResponse, len(q.Lines))
		for i, l := range q.Lines {
			resp.Lines[i] = FromLine(l)
		}
	}

	return resp
}
