package fic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
)

func testClient() *ClientEntity {
	return &ClientEntity{
		ID:              4201,
		Name:            "Vetreria Rossi SRL",
		VATNumber:       "01234567890",
		AddressStreet:   "Via Roma 1",
		AddressPostcode: "37100",
		AddressCity:     "Verona",
		AddressProvince: "VR",
		Country:         "Italia",

		DefaultPaymentTerms:     30,
		DefaultPaymentTermsType: "standard",
	}
}

func TestBuildOrder(t *testing.T) {
	doc := quote.NewQuote(mustID(t))
	doc.Number = "PRV-2026-00042"
	doc.Lines = []quote.Line{
		{
			WidthMM:    800,
			HeightMM:   1200,
			Quantity:   3,
			SpacerType: "crudo",
			SpacerCode: "D-18",
			UnitPrice:  types.MustMoney("24.50"),
			TotalPrice: types.MustMoney("73.50"),
		},
	}
	doc.DiscountedTotal = types.MustMoney("100.00")

	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	order := buildOrder(doc, testClient(), now)

	assert.Equal(t, "2026-03-10", order.Date)
	assert.Equal(t, "Rif: PRV-2026-00042", order.VisibleSubject)

	// Entity is the full registry snapshot, not just the id.
	assert.Equal(t, int64(4201), order.Entity.ID)
	assert.Equal(t, "Vetreria Rossi SRL", order.Entity.Name)
	assert.Equal(t, "Verona", order.Entity.AddressCity)

	require.Len(t, order.ItemsList, 1)
	item := order.ItemsList[0]
	assert.Equal(t, "Articolo Vetrata", item.Name)
	assert.Equal(t, "Dim: 800x1200 mm - Distanziale crudo D-18", item.Description)
	assert.Equal(t, 3, item.Qty)
	assert.InDelta(t, 24.50, item.NetPrice, 1e-9)
	assert.Equal(t, 0, item.VAT.ID)
	assert.InDelta(t, 22.0, item.VAT.Value, 1e-9)

	// Single payment for the gross total, due per the client terms.
	require.Len(t, order.PaymentsList, 1)
	payment := order.PaymentsList[0]
	assert.InDelta(t, 122.00, payment.Amount, 1e-9)
	assert.Equal(t, "2026-04-09", payment.DueDate)
	assert.Equal(t, "not_paid", payment.Status)

	assert.False(t, order.Stock)
	assert.False(t, order.ShowPayments)
	assert.Nil(t, order.PaymentMethod)
}

func TestBuildOrder_JobReferenceAndDeliveryDate(t *testing.T) {
	doc := quote.NewQuote(mustID(t))
	doc.Number = "PRV-2026-00007"
	doc.JobReference = "Cantiere Girardi"
	delivery := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	doc.ExpectedDeliveryDate = &delivery

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	order := buildOrder(doc, testClient(), now)

	assert.Equal(t, "Cantiere Girardi", order.VisibleSubject)
	assert.Equal(t, "2026-04-02", order.Date)
}

func TestBuildOrder_UsesDefaultPaymentMethod(t *testing.T) {
	client := testClient()
	client.DefaultPaymentMethod = &PaymentMethod{ID: 99}
	client.DefaultPaymentTermsType = TermsEndOfMonth

	doc := quote.NewQuote(mustID(t))
	doc.Number = "PRV-2026-00010"

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	order := buildOrder(doc, client, now)

	require.NotNil(t, order.PaymentMethod)
	assert.Equal(t, int64(99), order.PaymentMethod.ID)
	// 30 days land in April, end_of_month stretches to the 30th.
	assert.Equal(t, "2026-04-30", order.PaymentsList[0].DueDate)
}

func TestOrderItem(t *testing.T) {
	tests := []struct {
		name     string
		line     quote.Line
		wantName string
		wantDesc string
	}{
		{
			name: "description becomes the item name",
			line: quote.Line{
				Description: "Vetrata salotto",
				WidthMM:     500,
				HeightMM:    700,
				Quantity:    1,
			},
			wantName: "Vetrata salotto",
			wantDesc: "Dim: 500x700 mm",
		},
		{
			name: "spacer without code",
			line: quote.Line{
				WidthMM:    600,
				HeightMM:   600,
				Quantity:   2,
				SpacerType: "verniciato",
			},
			wantName: "Articolo Vetrata",
			wantDesc: "Dim: 600x600 mm - Distanziale verniciato",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := orderItem(&tt.line)
			assert.Equal(t, tt.wantName, item.Name)
			assert.Equal(t, tt.wantDesc, item.Description)
		})
	}
}

func TestRegistryName(t *testing.T) {
	business := "Vetreria Rossi SRL"
	c := newTestCustomer(t, "CLI-2026-00001", "Rossi")
	assert.Equal(t, "Rossi", registryName(c))

	c.BusinessName = &business
	assert.Equal(t, business, registryName(c))
}
