// Package quote provides the quote/order document: the single entity
// that travels the whole lifecycle from customer draft to delivery.
package quote

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/entity"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// Attachment is a stored file reference (drawings, photos, CAD).
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Kind       string    `json:"kind"` // pdf, img, cad
	UploadedAt time.Time `json:"uploadedAt"`
}

// Attachments is stored as JSONB.
type Attachments []Attachment

// Value implements driver.Valuer.
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Attachments) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Attachments", src)
	}
	return json.Unmarshal(data, a)
}

// Line is one configured grid or spacer element of a quote.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Catalog selection.
	Category string `db:"category" json:"category"`
	Model    string `db:"model" json:"model"`
	Size     string `db:"size" json:"size"`
	Finish   string `db:"finish" json:"finish"`

	// Raw dimensions in millimeters, before cut rounding.
	WidthMM  int `db:"width_mm" json:"widthMm"`
	HeightMM int `db:"height_mm" json:"heightMm"`

	// Internal grid structure.
	HorizontalBars int `db:"horizontal_bars" json:"horizontalBars"`
	VerticalBars   int `db:"vertical_bars" json:"verticalBars"`

	Quantity int `db:"quantity" json:"quantity"`

	// Perimeter spacer selection.
	SpacerType string `db:"spacer_type" json:"spacerType"`
	SpacerCode string `db:"spacer_code" json:"spacerCode,omitempty"`
	SoloSpacer bool   `db:"solo_spacer" json:"soloSpacer"`

	// Manufacturing flags. Curved bars cannot be priced automatically.
	Curved         bool `db:"curved" json:"curved"`
	Notch          bool `db:"notch" json:"notch"`
	NonEquidistant bool `db:"non_equidistant" json:"nonEquidistant"`

	Description    string `db:"description" json:"description"`
	ValidationNote string `db:"validation_note" json:"validationNote,omitempty"`

	// Base per-meter prices resolved from the catalog browse tree at
	// selection time, kept so a quote reprices deterministically.
	BaseGridUnitPrice   types.Money `db:"base_grid_unit_price" json:"baseGridUnitPrice"`
	BaseSpacerUnitPrice types.Money `db:"base_spacer_unit_price" json:"baseSpacerUnitPrice"`

	// Computed by the pricing engine.
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`
}

// NeedsValidation reports whether the line requires manual review
// before its price may be shown.
func (l *Line) NeedsValidation() bool {
	return l.Curved || l.ValidationNote != ""
}

// Quote is the single document of the ordering flow.
type Quote struct {
	entity.Document

	// CustomerID references the owning customer account.
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// JobReference is the customer's own order/site reference (commessa).
	JobReference string `db:"job_reference" json:"jobReference,omitempty"`

	Status Status `db:"status" json:"status"`

	// ActiveList records which price list produced the stored prices.
	ActiveList string `db:"active_list" json:"activeList"`

	// Totals. Subtotal is the sum of line totals; DiscountedTotal
	// applies the discount percent, the per-quote detraction and the
	// delivery cost.
	Subtotal        types.Money `db:"subtotal" json:"subtotal"`
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	Detraction      types.Money `db:"detraction" json:"detraction"`
	DeliveryCost    types.Money `db:"delivery_cost" json:"deliveryCost"`
	TariffName      string      `db:"tariff_name" json:"tariffName"`
	DiscountedTotal types.Money `db:"discounted_total" json:"discountedTotal"`

	CustomerNotes string `db:"customer_notes" json:"customerNotes,omitempty"`
	AdminNotes    string `db:"admin_notes" json:"adminNotes,omitempty"`

	Attachments Attachments `db:"attachments" json:"attachments,omitempty"`

	// Delivery tracking.
	ExpectedDeliveryDate *time.Time `db:"expected_delivery_date" json:"expectedDeliveryDate,omitempty"`
	Packages             int        `db:"packages" json:"packages,omitempty"`

	// Fatture in Cloud references, set by the invoicing sync.
	FICOrderID *int64  `db:"fic_order_id" json:"ficOrderId,omitempty"`
	FICOrderURL string `db:"fic_order_url" json:"ficOrderUrl,omitempty"`
	FICDDTID   *int64  `db:"fic_ddt_id" json:"ficDdtId,omitempty"`
	FICDDTURL  string  `db:"fic_ddt_url" json:"ficDdtUrl,omitempty"`

	// Table part.
	Lines []Line `db:"-" json:"lines"`
}

// NewQuote creates a draft quote for a customer.
func NewQuote(customerID id.ID) *Quote {
	return &Quote{
		Document:        entity.NewDocument(),
		CustomerID:      customerID,
		Status:          StatusDraft,
		Subtotal:        types.Zero(),
		DiscountPercent: types.Zero(),
		Detraction:      types.Zero(),
		DeliveryCost:    types.Zero(),
		DiscountedTotal: types.Zero(),
		Lines:           make([]Line, 0),
	}
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !q.Status.IsValid() {
		return apperror.NewValidation("unknown quote status").
			WithDetail("status", string(q.Status))
	}
	if q.DiscountPercent.IsNegative() || q.DiscountPercent.GreaterThan(types.MustMoney("100")) {
		return apperror.NewValidation("discount percent must be between 0 and 100").
			WithDetail("field", "discountPercent")
	}

	for i, line := range q.Lines {
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.WidthMM <= 0 || line.HeightMM <= 0 {
			return apperror.NewValidation("dimensions must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// RequiresValidation reports whether any line needs manual review.
func (q *Quote) RequiresValidation() bool {
	for i := range q.Lines {
		if q.Lines[i].NeedsValidation() {
			return true
		}
	}
	return false
}

// SubmitTarget is the state a draft moves to on submission: review
// when something needs a human, otherwise straight to ready.
func (q *Quote) SubmitTarget() Status {
	if q.RequiresValidation() {
		return StatusPendingValidation
	}
	return StatusQuoteReady
}

// RecalculateTotals aggregates line totals into the document totals.
// Discount, detraction and delivery apply here, never inside the
// pricing engine. The final total never drops below zero.
func (q *Quote) RecalculateTotals() {
	subtotal := types.Zero()
	for i := range q.Lines {
		subtotal = subtotal.Add(q.Lines[i].TotalPrice)
	}
	q.Subtotal = types.RoundMoney(subtotal)

	hundred := types.MustMoney("100")
	discounted := subtotal.Mul(hundred.Sub(q.DiscountPercent)).Div(hundred)
	total := discounted.Sub(q.Detraction).Add(q.DeliveryCost)
	if total.IsNegative() {
		total = types.Zero()
	}
	q.DiscountedTotal = types.RoundMoney(total)
}
