package quote

import (
	"context"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

func draftQuote() *Quote {
	q := NewQuote(id.New())
	q.Lines = []Line{
		{
			LineID: id.New(), LineNo: 1,
			Category: "INGLESINA", Model: "VARSAVIA",
			WidthMM: 1000, HeightMM: 500, Quantity: 2,
			HorizontalBars: 1, VerticalBars: 1,
			TotalPrice: types.MustMoney("45.00"),
		},
		{
			LineID: id.New(), LineNo: 2,
			Category: "CANALINO", Model: "ALLUMINIO",
			WidthMM: 1000, HeightMM: 1000, Quantity: 3,
			SoloSpacer: true, SpacerCode: "C211",
			TotalPrice: types.MustMoney("30.00"),
		},
	}
	return q
}

func TestQuoteValidate(t *testing.T) {
	q := draftQuote()
	if err := q.Validate(context.Background()); err != nil {
		t.Fatalf("valid quote rejected: %v", err)
	}

	bad := draftQuote()
	bad.CustomerID = id.Nil()
	if err := bad.Validate(context.Background()); err == nil {
		t.Error("expected error for missing customer")
	}

	bad = draftQuote()
	bad.Lines[0].Quantity = 0
	if err := bad.Validate(context.Background()); err == nil {
		t.Error("expected error for zero quantity")
	}

	bad = draftQuote()
	bad.Lines[1].WidthMM = -10
	if err := bad.Validate(context.Background()); err == nil {
		t.Error("expected error for negative width")
	}

	bad = draftQuote()
	bad.DiscountPercent = types.MustMoney("101")
	if err := bad.Validate(context.Background()); err == nil {
		t.Error("expected error for discount over 100")
	}

	bad = draftQuote()
	bad.Status = Status("NOPE")
	if err := bad.Validate(context.Background()); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestRecalculateTotals(t *testing.T) {
	q := draftQuote()
	// subtotal 75; 10% discount -> 67.5; -2.5 detraction +25 delivery.
	q.DiscountPercent = types.MustMoney("10")
	q.Detraction = types.MustMoney("2.5")
	q.DeliveryCost = types.MustMoney("25")

	q.RecalculateTotals()

	if !q.Subtotal.Equal(types.MustMoney("75.00")) {
		t.Errorf("Subtotal = %s, want 75.00", q.Subtotal)
	}
	if !q.DiscountedTotal.Equal(types.MustMoney("90.00")) {
		t.Errorf("DiscountedTotal = %s, want 90.00", q.DiscountedTotal)
	}
}

func TestRecalculateTotalsFloorsAtZero(t *testing.T) {
	q := NewQuote(id.New())
	q.Lines = []Line{{LineID: id.New(), LineNo: 1, WidthMM: 500, HeightMM: 500,
		Quantity: 1, TotalPrice: types.MustMoney("5")}}
	q.Detraction = types.MustMoney("50")

	q.RecalculateTotals()

	if !q.DiscountedTotal.IsZero() {
		t.Errorf("DiscountedTotal = %s, want 0 (floored)", q.DiscountedTotal)
	}
}

func TestSubmitTarget(t *testing.T) {
	q := draftQuote()
	if got := q.SubmitTarget(); got != StatusQuoteReady {
		t.Errorf("SubmitTarget() = %s, want QUOTE_READY", got)
	}

	q.Lines[0].Curved = true
	if got := q.SubmitTarget(); got != StatusPendingValidation {
		t.Errorf("SubmitTarget() with curved line = %s, want PENDING_VAL", got)
	}

	q.Lines[0].Curved = false
	q.Lines[1].ValidationNote = "custom notch spacing"
	if got := q.SubmitTarget(); got != StatusPendingValidation {
		t.Errorf("SubmitTarget() with validation note = %s, want PENDING_VAL", got)
	}
}
