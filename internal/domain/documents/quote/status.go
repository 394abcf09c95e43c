package quote

import "github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"

// Status is the quote lifecycle state. The stored codes match the
// historical data and must not be renamed.
type Status string

const (
	// StatusDraft: the customer is still composing the quote.
	StatusDraft Status = "DRAFT"
	// StatusPendingValidation: a line needs manual review (curved
	// bars, validation notes) before the price can be shown.
	StatusPendingValidation Status = "PENDING_VAL"
	// StatusQuoteReady: validated, price visible to the customer.
	StatusQuoteReady Status = "QUOTE_READY"
	// StatusOrderRequested: the customer asked to turn the quote into
	// an order.
	StatusOrderRequested Status = "ORDER_REQ"
	// StatusWaitingFast: accepted on the fast track, no signature.
	StatusWaitingFast Status = "WAITING_FAST"
	// StatusWaitingSign: accepted, signature pending.
	StatusWaitingSign Status = "WAITING_SIGN"
	// StatusSigned: confirmation received.
	StatusSigned Status = "SIGNED"
	// StatusInProduction: the order is on the shop floor.
	StatusInProduction Status = "IN_PRODUZIONE"
	// StatusDelivery: delivery note issued.
	StatusDelivery Status = "DELIVERY"
	// StatusRejected: terminal refusal, by either side.
	StatusRejected Status = "REJECTED"
)

// transitions lists the legal next states for each state. Missing
// entries are terminal.
var transitions = map[Status][]Status{
	StatusDraft:             {StatusPendingValidation, StatusQuoteReady, StatusRejected},
	StatusPendingValidation: {StatusQuoteReady, StatusDraft, StatusRejected},
	StatusQuoteReady:        {StatusOrderRequested, StatusDraft, StatusRejected},
	StatusOrderRequested:    {StatusWaitingFast, StatusWaitingSign, StatusRejected},
	StatusWaitingFast:       {StatusInProduction, StatusRejected},
	StatusWaitingSign:       {StatusSigned, StatusRejected},
	StatusSigned:            {StatusInProduction},
	StatusInProduction:      {StatusDelivery},
}

// IsValid reports whether the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingValidation, StatusQuoteReady,
		StatusOrderRequested, StatusWaitingFast, StatusWaitingSign,
		StatusSigned, StatusInProduction, StatusDelivery, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether moving to the target state is legal.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether quote content may still change.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusPendingValidation
}

// CheckTransition returns a typed error for an illegal transition.
func CheckTransition(from, to Status) error {
	if !to.IsValid() {
		return apperror.NewValidation("unknown quote status").
			WithDetail("status", string(to))
	}
	if !from.CanTransition(to) {
		return apperror.NewQuoteState(string(from), string(to))
	}
	return nil
}

// isAcceptance reports whether a transition represents staff accepting
// an order request; acceptance triggers the invoicing sync.
func isAcceptance(from, to Status) bool {
	return from == StatusOrderRequested &&
		(to == StatusWaitingFast || to == StatusWaitingSign)
}
