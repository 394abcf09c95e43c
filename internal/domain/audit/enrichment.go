// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/security"
)

// EnrichCreatedByDirect sets CreatedBy and UpdatedBy from the context
// user ID. Use in BeforeCreate hooks.
//
// If userID is not in context, this is a no-op.
func EnrichCreatedByDirect(ctx context.Context, createdBy, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedByDirect sets only UpdatedBy from the context user ID.
// Use in BeforeUpdate hooks.
func EnrichUpdatedByDirect(ctx context.Context, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
