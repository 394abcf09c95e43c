package fic

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

const (
	dateLayout = "2006-01-02"

	// VAT rate id 0 is the standard 22% in Fatture in Cloud.
	standardVATID    = 0
	standardVATValue = 22.0

	transportCausal = "VENDITA"
	transporter     = "MITTENTE"

	defaultItemName = "Articolo Vetrata"
)

var vatMultiplier = types.MustMoney("1.22")

// SyncService pushes accepted quotes to Fatture in Cloud as sales
// orders and issues delivery notes for shipping.
type SyncService struct {
	quotes    *quote.Service
	customers *customer.Service
	api       *Client
}

// NewSyncService creates the invoicing sync.
func NewSyncService(quotes *quote.Service, customers *customer.Service, api *Client) *SyncService {
	return &SyncService{
		quotes:    quotes,
		customers: customers,
		api:       api,
	}
}

var _ postgres.OutboxHandler = (*SyncService)(nil)

// Handle dispatches outbox events from the relay.
func (s *SyncService) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	switch msg.EventType {
	case quote.EventTypeAccepted:
		var event quote.AcceptedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			return fmt.Errorf("unmarshal accepted event: %w", err)
		}
		return s.SyncOrder(ctx, event.QuoteID)
	default:
		// Unknown events are acknowledged, not retried.
		logger.Warn(ctx, "unhandled outbox event", "event_type", msg.EventType)
		return nil
	}
}

// SyncOrder creates the sales order for an accepted quote and stores
// the resulting document reference. Safe to retry: a quote that
// already carries an order id is skipped.
func (s *SyncService) SyncOrder(ctx context.Context, quoteID id.ID) error {
	doc, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}

	if doc.FICOrderID != nil {
		logger.Info(ctx, "order already synced", "quote", doc.Number, "fic_order_id", *doc.FICOrderID)
		return nil
	}

	cust, err := s.customers.GetByID(ctx, doc.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}

	clientID, err := s.ensureClient(ctx, cust)
	if err != nil {
		return err
	}

	// The detailed fieldset carries the payment defaults the payments
	// list needs.
	client, err := s.api.GetClientDetailed(ctx, clientID)
	if err != nil {
		return fmt.Errorf("get client %d: %w", clientID, err)
	}

	order := buildOrder(doc, client, time.Now())
	created, err := s.api.CreateOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("create order for quote %s: %w", doc.Number, err)
	}

	if err := s.quotes.AttachFICOrder(ctx, doc.ID, created.ID, created.URL); err != nil {
		return fmt.Errorf("attach order reference: %w", err)
	}

	logger.Info(ctx, "order synced", "quote", doc.Number, "fic_order_id", created.ID)
	return nil
}

// ensureClient resolves the customer's Fatture in Cloud client record,
// searching by VAT number and registering it when absent. The link is
// stored on the customer so later syncs skip the lookup.
func (s *SyncService) ensureClient(ctx context.Context, cust *customer.Customer) (int64, error) {
	if cust.FICClientID != nil {
		return *cust.FICClientID, nil
	}

	vat := cust.NormalizedVAT()
	if vat == "" {
		return 0, apperror.NewBusinessRule("CUSTOMER_NO_VAT",
			"customer has no VAT number, cannot sync to invoicing").
			WithDetail("customer", cust.Code)
	}

	found, err := s.api.SearchClientByVAT(ctx, vat)
	if err != nil {
		return 0, fmt.Errorf("search client by VAT: %w", err)
	}

	if found == nil {
		created, err := s.api.CreateClient(ctx, ClientEntity{
			Type:      "company",
			Name:      registryName(cust),
			VATNumber: vat,
			Email:     deref(cust.Email),
		})
		if err != nil {
			return 0, fmt.Errorf("create client: %w", err)
		}
		found = created
		logger.Info(ctx, "registered invoicing client", "customer", cust.Code, "fic_client_id", found.ID)
	}

	if err := s.customers.LinkFICClient(ctx, cust.ID, found.ID); err != nil {
		return 0, fmt.Errorf("link client id: %w", err)
	}
	return found.ID, nil
}

func registryName(c *customer.Customer) string {
	if c.BusinessName != nil && *c.BusinessName != "" {
		return *c.BusinessName
	}
	return c.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// buildOrder assembles the order payload: full registry snapshot as
// entity, one item per quote line, a single payment for the gross
// total due per the client's payment terms.
func buildOrder(doc *quote.Quote, client *ClientEntity, now time.Time) IssuedDocument {
	date := now
	if doc.ExpectedDeliveryDate != nil {
		date = *doc.ExpectedDeliveryDate
	}

	subject := doc.JobReference
	if subject == "" {
		subject = "Rif: " + doc.Number
	}

	items := make([]DocumentItem, 0, len(doc.Lines))
	for i := range doc.Lines {
		items = append(items, orderItem(&doc.Lines[i]))
	}

	gross := types.RoundMoney(doc.DiscountedTotal.Mul(vatMultiplier))
	due := DueDate(now, client.DefaultPaymentTerms, client.DefaultPaymentTermsType)

	order := IssuedDocument{
		Entity: DocumentEntity{
			ID:              client.ID,
			Name:            client.Name,
			VATNumber:       client.VATNumber,
			TaxCode:         client.TaxCode,
			AddressStreet:   client.AddressStreet,
			AddressPostcode: client.AddressPostcode,
			AddressCity:     client.AddressCity,
			AddressProvince: client.AddressProvince,
			Country:         client.Country,
		},
		Date:           date.Format(dateLayout),
		VisibleSubject: subject,
		ItemsList:      items,
		PaymentsList: []DocumentPayment{{
			Amount:  gross.InexactFloat64(),
			DueDate: due.Format(dateLayout),
			Status:  "not_paid",
		}},
	}

	if client.DefaultPaymentMethod != nil {
		order.PaymentMethod = &PaymentMethod{ID: client.DefaultPaymentMethod.ID}
	}

	return order
}

func orderItem(l *quote.Line) DocumentItem {
	name := l.Description
	if name == "" {
		name = defaultItemName
	}

	desc := fmt.Sprintf("Dim: %dx%d mm", l.WidthMM, l.HeightMM)
	if l.SpacerType != "" {
		desc += " - Distanziale " + l.SpacerType
		if l.SpacerCode != "" {
			desc += " " + l.SpacerCode
		}
	}

	return DocumentItem{
		Name:        name,
		Description: desc,
		Qty:         l.Quantity,
		NetPrice:    l.UnitPrice.InexactFloat64(),
		VAT:         VAT{ID: standardVATID, Value: standardVATValue},
	}
}

// DeliveryNoteInput describes the shipment a DDT covers.
type DeliveryNoteInput struct {
	QuoteIDs     []id.ID
	Packages     int
	WeightKG     float64
	DeliveryDate time.Time
}

// CreateDeliveryNote issues the transport document for one or more
// quotes. A single order is converted in place; several orders are
// joined into a cumulative delivery note. Every covered quote moves to
// the delivery state with the DDT reference attached.
func (s *SyncService) CreateDeliveryNote(ctx context.Context, in DeliveryNoteInput) (*IssuedDocument, error) {
	if len(in.QuoteIDs) == 0 {
		return nil, apperror.NewValidation("at least one quote is required").
			WithDetail("field", "quoteIds")
	}
	if in.Packages <= 0 {
		return nil, apperror.NewValidation("packages must be positive").
			WithDetail("field", "packages")
	}

	orderIDs := make([]int64, 0, len(in.QuoteIDs))
	for _, quoteID := range in.QuoteIDs {
		doc, err := s.quotes.GetByID(ctx, quoteID)
		if err != nil {
			return nil, err
		}
		if doc.FICOrderID == nil {
			return nil, apperror.NewBusinessRule("QUOTE_NOT_SYNCED",
				"quote has no invoicing order yet").
				WithDetail("quote", doc.Number)
		}
		orderIDs = append(orderIDs, *doc.FICOrderID)
	}

	nextNumber, err := s.api.NextDeliveryNoteNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("next delivery note number: %w", err)
	}

	date := in.DeliveryDate.Format(dateLayout)
	packages := strconv.Itoa(in.Packages)
	weight := ""
	if in.WeightKG > 0 {
		weight = strconv.FormatFloat(in.WeightKG, 'f', -1, 64)
	}

	var ddt *IssuedDocument
	if len(orderIDs) == 1 {
		ddt, err = s.api.ConvertToDeliveryNote(ctx, orderIDs[0], deliveryNoteUpdate{
			DeliveryNote:       true,
			DNNumber:           nextNumber,
			DNDate:             date,
			DNAIPackagesNumber: packages,
			DNAICausal:         transportCausal,
			DNAITransporter:    transporter,
			DNAIWeight:         weight,
			CDriverAndContents: driverAndContents{
				PackagesNumber:  in.Packages,
				TransportCausal: transportCausal,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("convert order to delivery note: %w", err)
		}
	} else {
		joined, err := s.api.JoinDocuments(ctx, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("join orders: %w", err)
		}

		ddt, err = s.api.CreateDocument(ctx, IssuedDocument{
			Type:           "delivery_note",
			Entity:         joined.Entity,
			Date:           date,
			VisibleSubject: fmt.Sprintf("DDT Cumulativo (%d Ordini)", len(orderIDs)),
			Notes:          joined.Notes,
			Language:       joined.Language,
			Currency:       joined.Currency,
			ItemsList:      joined.ItemsList,
			PaymentsList:   joined.PaymentsList,

			DeliveryNote:       true,
			DNNumber:           nextNumber,
			DNDate:             date,
			DNAIPackagesNumber: packages,
			DNAICausal:         transportCausal,
			DNAITransporter:    transporter,
			DNAIWeight:         weight,
			CDriverAndContents: &driverAndContents{
				PackagesNumber:  in.Packages,
				TransportCausal: transportCausal,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create cumulative delivery note: %w", err)
		}
	}

	err = s.quotes.AttachDeliveryNote(ctx, in.QuoteIDs, ddt.ID, ddt.URL, in.Packages, in.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("attach delivery note reference: %w", err)
	}

	logger.Info(ctx, "delivery note issued",
		"dn_number", nextNumber,
		"orders", len(orderIDs),
		"fic_document_id", ddt.ID)
	return ddt, nil
}
