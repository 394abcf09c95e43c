package customer

import (
	"context"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByVAT retrieves a customer by normalized VAT number.
	FindByVAT(ctx context.Context, vat string) (*Customer, error)

	// GetForUpdate retrieves a customer with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Customer, error)

	// SetFICClientID stores the linked Fatture in Cloud client id.
	SetFICClientID(ctx context.Context, id id.ID, ficClientID int64) error
}
