package quote

import (
	"context"
	"testing"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/security"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

// --- fakes ---

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	docs  map[id.ID]*Quote
	lines map[id.ID][]Line
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[id.ID]*Quote), lines: make(map[id.ID][]Line)}
}

func (r *memRepo) Create(_ context.Context, doc *Quote) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, docID id.ID) (*Quote, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("quote", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *memRepo) GetByNumber(_ context.Context, number string) (*Quote, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("quote", number)
}

func (r *memRepo) Update(_ context.Context, doc *Quote) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *memRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *memRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *memRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Quote], error) {
	out := domain.ListResult[*Quote]{}
	for _, doc := range r.docs {
		out.Items = append(out.Items, doc)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Quote, error) {
	return r.GetByID(ctx, docID)
}

type fakeDirectory struct{ cust *customer.Customer }

func (f fakeDirectory) GetByID(_ context.Context, _ id.ID) (*customer.Customer, error) {
	return f.cust, nil
}

type fakeResolver struct{ ctx pricing.Context }

func (f fakeResolver) ResolveFor(_ context.Context, _ pricing.CustomerOverrides) (pricing.Context, error) {
	return f.ctx, nil
}

// fixedPricer prices every line at the base grid price.
type fixedPricer struct{}

func (fixedPricer) Price(_ context.Context, in pricing.LineInput, _ pricing.Version) pricing.Result {
	unit := in.BaseGridUnitPrice
	return pricing.Result{
		UnitPrice:     unit,
		ExtendedPrice: unit.Mul(types.NewMoney(float64(in.Quantity))),
	}
}

type recordedEvent struct {
	aggregateID id.ID
	eventType   string
	payload     any
}

type fakeEvents struct{ published []recordedEvent }

func (f *fakeEvents) Publish(_ context.Context, _ string, aggregateID id.ID, eventType string, payload any) error {
	f.published = append(f.published, recordedEvent{aggregateID, eventType, payload})
	return nil
}

func newTestService(repo *memRepo, events *fakeEvents) *Service {
	cust := customer.NewCustomer("CLI-001", "Vetreria Rossi")
	pctx := pricing.Context{
		ActiveList:    pricing.List2026A,
		ActiveListRaw: "2026-a",
		DeliveryCost:  types.MustMoney("25"),
		TariffName:    "Spedizione Standard",
		Detraction:    types.MustMoney("2.5"),
	}
	var pub EventPublisher
	if events != nil {
		pub = events
	}
	return NewService(repo, fakeDirectory{cust}, fakeResolver{pctx}, fixedPricer{},
		nil, passTx{}, pub, nil)
}

// --- tests ---

func TestServiceCreateRepricesAndStores(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0001"
	doc.Lines[0].BaseGridUnitPrice = types.MustMoney("10")
	doc.Lines[1].BaseGridUnitPrice = types.MustMoney("4")

	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, err := svc.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if stored.Status != StatusDraft {
		t.Errorf("Status = %s, want DRAFT", stored.Status)
	}
	if stored.ActiveList != "2026-a" || stored.TariffName != "Spedizione Standard" {
		t.Errorf("context fields = %q/%q", stored.ActiveList, stored.TariffName)
	}
	// line 1: 10*2 = 20, line 2: 4*3 = 12, subtotal 32.
	if !stored.Subtotal.Equal(types.MustMoney("32.00")) {
		t.Errorf("Subtotal = %s, want 32.00", stored.Subtotal)
	}
	// 32 - 2.5 detraction + 25 delivery = 54.5.
	if !stored.DiscountedTotal.Equal(types.MustMoney("54.50")) {
		t.Errorf("DiscountedTotal = %s, want 54.50", stored.DiscountedTotal)
	}
	if len(stored.Lines) != 2 || !stored.Lines[0].UnitPrice.Equal(types.MustMoney("10")) {
		t.Errorf("lines not repriced: %+v", stored.Lines)
	}
}

func TestServiceStampsAuditFields(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0010"

	ctx := security.WithUserID(context.Background(), "user-alba")
	if err := svc.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, err := svc.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.CreatedBy != "user-alba" || stored.UpdatedBy != "user-alba" {
		t.Errorf("audit fields = %q/%q, want user-alba", stored.CreatedBy, stored.UpdatedBy)
	}

	// A later edit by someone else touches UpdatedBy only.
	ctx = security.WithUserID(context.Background(), "user-bruno")
	if err := svc.Update(ctx, stored); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored, err = svc.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.CreatedBy != "user-alba" || stored.UpdatedBy != "user-bruno" {
		t.Errorf("audit fields = %q/%q, want alba/bruno", stored.CreatedBy, stored.UpdatedBy)
	}
}

func TestServiceUpdateRejectedWhenNotEditable(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0002"
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	doc.Status = StatusQuoteReady
	err := svc.Update(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error updating a ready quote")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != "QUOTE_NOT_EDITABLE" {
		t.Errorf("error = %v, want QUOTE_NOT_EDITABLE", err)
	}
}

func TestServiceAcceptanceEmitsEvent(t *testing.T) {
	repo := newMemRepo()
	events := &fakeEvents{}
	svc := newTestService(repo, events)

	doc := draftQuote()
	doc.Number = "PRV-0003"
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Walk the quote to ORDER_REQ, nothing published yet.
	for _, to := range []Status{StatusQuoteReady, StatusOrderRequested} {
		if _, err := svc.Transition(context.Background(), doc.ID, to); err != nil {
			t.Fatalf("Transition to %s: %v", to, err)
		}
	}
	if len(events.published) != 0 {
		t.Fatalf("no event expected before acceptance, got %d", len(events.published))
	}

	// Acceptance publishes exactly one invoicing event.
	if _, err := svc.Transition(context.Background(), doc.ID, StatusWaitingSign); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if len(events.published) != 1 {
		t.Fatalf("published %d events, want 1", len(events.published))
	}
	ev := events.published[0]
	if ev.eventType != EventTypeAccepted || ev.aggregateID != doc.ID {
		t.Errorf("event = %+v", ev)
	}
	payload, ok := ev.payload.(AcceptedEvent)
	if !ok || payload.Number != "PRV-0003" {
		t.Errorf("payload = %+v", ev.payload)
	}
}

func TestServiceIllegalTransition(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0004"
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Transition(context.Background(), doc.ID, StatusDelivery); err == nil {
		t.Fatal("DRAFT -> DELIVERY should fail")
	}
}

func TestServiceSubmitRoutesOnValidation(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0005"
	doc.Lines[0].Curved = true
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Submit(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if updated.Status != StatusPendingValidation {
		t.Errorf("Status = %s, want PENDING_VAL", updated.Status)
	}
}

func TestServiceDeleteOnlyDrafts(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0006"
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Transition(context.Background(), doc.ID, StatusQuoteReady); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	if err := svc.Delete(context.Background(), doc.ID); err == nil {
		t.Fatal("expected error deleting a non-draft quote")
	}
}

func TestServiceAttachDeliveryNote(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)

	doc := draftQuote()
	doc.Number = "PRV-0007"
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Force the state a synced order would be in.
	stored, _ := repo.GetByID(context.Background(), doc.ID)
	stored.Status = StatusInProduction
	repo.docs[doc.ID] = stored

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := svc.AttachDeliveryNote(context.Background(), []id.ID{doc.ID}, 9912, "https://example/ddt", 4, date); err != nil {
		t.Fatalf("AttachDeliveryNote: %v", err)
	}

	got, _ := svc.GetByID(context.Background(), doc.ID)
	if got.Status != StatusDelivery || got.FICDDTID == nil || *got.FICDDTID != 9912 || got.Packages != 4 {
		t.Errorf("after attach: %+v", got)
	}
}
