package quote

import (
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
)

func TestStatusTransitions(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusDraft, StatusQuoteReady},
		{StatusDraft, StatusPendingValidation},
		{StatusDraft, StatusRejected},
		{StatusPendingValidation, StatusQuoteReady},
		{StatusPendingValidation, StatusDraft},
		{StatusQuoteReady, StatusOrderRequested},
		{StatusQuoteReady, StatusDraft},
		{StatusOrderRequested, StatusWaitingFast},
		{StatusOrderRequested, StatusWaitingSign},
		{StatusWaitingFast, StatusInProduction},
		{StatusWaitingSign, StatusSigned},
		{StatusSigned, StatusInProduction},
		{StatusInProduction, StatusDelivery},
	}
	for _, tt := range legal {
		if err := CheckTransition(tt.from, tt.to); err != nil {
			t.Errorf("%s -> %s should be legal: %v", tt.from, tt.to, err)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusDraft, StatusOrderRequested},
		{StatusDraft, StatusDelivery},
		{StatusQuoteReady, StatusSigned},
		{StatusOrderRequested, StatusInProduction},
		{StatusWaitingSign, StatusInProduction},
		{StatusRejected, StatusDraft},
		{StatusDelivery, StatusInProduction},
	}
	for _, tt := range illegal {
		err := CheckTransition(tt.from, tt.to)
		if err == nil {
			t.Errorf("%s -> %s should be illegal", tt.from, tt.to)
			continue
		}
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeQuoteState {
			t.Errorf("%s -> %s: error = %v, want %s", tt.from, tt.to, err, apperror.CodeQuoteState)
		}
	}

	if err := CheckTransition(StatusDraft, Status("BOGUS")); err == nil {
		t.Error("unknown target status should be rejected")
	}
}

func TestStatusEditable(t *testing.T) {
	editable := map[Status]bool{
		StatusDraft:             true,
		StatusPendingValidation: true,
		StatusQuoteReady:        false,
		StatusOrderRequested:    false,
		StatusSigned:            false,
		StatusRejected:          false,
	}
	for s, want := range editable {
		if got := s.Editable(); got != want {
			t.Errorf("%s.Editable() = %v, want %v", s, got, want)
		}
	}
}

func TestIsAcceptance(t *testing.T) {
	if !isAcceptance(StatusOrderRequested, StatusWaitingFast) {
		t.Error("ORDER_REQ -> WAITING_FAST is an acceptance")
	}
	if !isAcceptance(StatusOrderRequested, StatusWaitingSign) {
		t.Error("ORDER_REQ -> WAITING_SIGN is an acceptance")
	}
	if isAcceptance(StatusOrderRequested, StatusRejected) {
		t.Error("rejection is not an acceptance")
	}
	if isAcceptance(StatusQuoteReady, StatusOrderRequested) {
		t.Error("the customer's request is not an acceptance")
	}
}
