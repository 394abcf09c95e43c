package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/tx"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/audit"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"
)

// EventTypeAccepted is emitted when staff accept an order request;
// the worker relays it to the invoicing sync.
const EventTypeAccepted = "QuoteAccepted"

// AcceptedEvent is the outbox payload for an accepted quote.
type AcceptedEvent struct {
	QuoteID    id.ID  `json:"quoteId"`
	CustomerID id.ID  `json:"customerId"`
	Number     string `json:"number"`
}

// Pricer computes line prices. Satisfied by pricing.Engine.
type Pricer interface {
	Price(ctx context.Context, in pricing.LineInput, version pricing.Version) pricing.Result
}

// ContextResolver resolves the pricing context for a customer.
// Satisfied by settings.Service.
type ContextResolver interface {
	ResolveFor(ctx context.Context, overrides pricing.CustomerOverrides) (pricing.Context, error)
}

// CustomerDirectory looks up customer records. Satisfied by
// customer.Service.
type CustomerDirectory interface {
	GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error)
}

// EventPublisher writes domain events to the transactional outbox.
type EventPublisher interface {
	Publish(ctx context.Context, aggregateType string, aggregateID id.ID, eventType string, payload any) error
}

// AuditLogger records entity change history.
type AuditLogger interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides business operations for quote documents.
type Service struct {
	repo      Repository
	customers CustomerDirectory
	resolver  ContextResolver
	pricer    Pricer
	numerator *numerator.Service
	txManager tx.Manager
	events    EventPublisher
	audit     AuditLogger
}

// NewService creates a new quote service. events and audit may be nil
// in tests.
func NewService(
	repo Repository,
	customers CustomerDirectory,
	resolver ContextResolver,
	pricer Pricer,
	num *numerator.Service,
	txManager tx.Manager,
	events EventPublisher,
	auditLog AuditLogger,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		resolver:  resolver,
		pricer:    pricer,
		numerator: num,
		txManager: txManager,
		events:    events,
		audit:     auditLog,
	}
}

// Reprice recomputes every line and the totals through the owning
// customer's resolved pricing context. The stored ActiveList records
// which list produced the prices.
func (s *Service) Reprice(ctx context.Context, doc *Quote) error {
	cust, err := s.customers.GetByID(ctx, doc.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}

	pctx, err := s.resolver.ResolveFor(ctx, cust.PricingOverrides())
	if err != nil {
		return fmt.Errorf("resolve pricing context: %w", err)
	}

	doc.ActiveList = pctx.ActiveListRaw
	doc.Detraction = pctx.Detraction
	doc.DeliveryCost = pctx.DeliveryCost
	doc.TariffName = pctx.TariffName

	for i := range doc.Lines {
		line := &doc.Lines[i]
		res := s.pricer.Price(ctx, lineInput(line), pctx.ActiveList)
		line.UnitPrice = res.UnitPrice
		line.TotalPrice = res.ExtendedPrice
	}

	doc.RecalculateTotals()
	return nil
}

func lineInput(l *Line) pricing.LineInput {
	return pricing.LineInput{
		WidthMM:             l.WidthMM,
		HeightMM:            l.HeightMM,
		Quantity:            l.Quantity,
		HorizontalBars:      l.HorizontalBars,
		VerticalBars:        l.VerticalBars,
		SpacerType:          l.SpacerType,
		SpacerCode:          l.SpacerCode,
		SoloSpacer:          l.SoloSpacer,
		BaseGridUnitPrice:   l.BaseGridUnitPrice,
		BaseSpacerUnitPrice: l.BaseSpacerUnitPrice,
	}
}

// Create creates a new draft quote (number assigned, lines priced).
func (s *Service) Create(ctx context.Context, doc *Quote) error {
	doc.Status = StatusDraft

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig("PRV")
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	if err := s.Reprice(ctx, doc); err != nil {
		return err
	}

	audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, doc.ID, "create", doc)
	logger.Info(ctx, "quote created", "id", doc.ID, "number", doc.Number, "customer", doc.CustomerID)
	return nil
}

// GetByID retrieves a quote with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quote, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// GetByNumber retrieves a quote by its document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Quote, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// Update saves content changes. Only editable states accept changes;
// lines are repriced on every save.
func (s *Service) Update(ctx context.Context, doc *Quote) error {
	if !doc.Status.Editable() {
		return apperror.NewBusinessRule("QUOTE_NOT_EDITABLE",
			"quote can only be modified in draft or validation state").
			WithDetail("status", string(doc.Status))
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.Reprice(ctx, doc); err != nil {
		return err
	}

	audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, doc.ID, "update", doc)
	return nil
}

// Recalculate reprices a stored quote in place. Used after catalog or
// settings changes.
func (s *Service) Recalculate(ctx context.Context, docID id.ID) (*Quote, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := s.Reprice(ctx, doc); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Submit moves a draft forward: to review when a line needs a human,
// otherwise straight to ready.
func (s *Service) Submit(ctx context.Context, docID id.ID) (*Quote, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, doc, doc.SubmitTarget())
}

// Transition moves a quote to the target state after a legality check.
// Accepting an order request emits the invoicing event in the same
// transaction as the state change.
func (s *Service) Transition(ctx context.Context, docID id.ID, to Status) (*Quote, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, doc, to)
}

func (s *Service) transition(ctx context.Context, doc *Quote, to Status) (*Quote, error) {
	from := doc.Status
	if err := CheckTransition(from, to); err != nil {
		return nil, err
	}

	doc.Status = to

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if s.events != nil && isAcceptance(from, to) {
			event := AcceptedEvent{QuoteID: doc.ID, CustomerID: doc.CustomerID, Number: doc.Number}
			if err := s.events.Publish(ctx, "Quote", doc.ID, EventTypeAccepted, event); err != nil {
				return fmt.Errorf("publish accepted event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, doc.ID, "transition", map[string]any{"from": from, "to": to})
	logger.Info(ctx, "quote transitioned", "id", doc.ID, "from", from, "to", to)
	return doc, nil
}

// AttachFICOrder stores the invoicing order reference after a
// successful sync.
func (s *Service) AttachFICOrder(ctx context.Context, docID id.ID, orderID int64, url string) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		doc.FICOrderID = &orderID
		doc.FICOrderURL = url
		return s.repo.Update(ctx, doc)
	})
}

// AttachDeliveryNote stores the delivery note reference on every quote
// it covers and moves them to the delivery state.
func (s *Service) AttachDeliveryNote(ctx context.Context, docIDs []id.ID, ddtID int64, url string, packages int, date time.Time) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, docID := range docIDs {
			doc, err := s.repo.GetForUpdate(ctx, docID)
			if err != nil {
				return err
			}
			doc.FICDDTID = &ddtID
			doc.FICDDTURL = url
			doc.Packages = packages
			doc.ExpectedDeliveryDate = &date
			doc.Status = StatusDelivery
			if err := s.repo.Update(ctx, doc); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a quote; only drafts may be removed.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.Status != StatusDraft {
		return apperror.NewBusinessRule("QUOTE_NOT_DELETABLE",
			"only draft quotes can be deleted").
			WithDetail("status", string(doc.Status))
	}
	return s.repo.Delete(ctx, docID)
}

// List retrieves quotes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) logAudit(ctx context.Context, docID id.ID, action string, changes any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogChange(ctx, "Quote", docID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "id", docID, "action", action, "error", err)
	}
}
