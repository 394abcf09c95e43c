package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByVAT retrieves a customer by normalized VAT number.
func (r *CustomerRepo) FindByVAT(ctx context.Context, vat string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"vat_number": vat}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", vat)
		}
		return nil, err
	}
	return c, nil
}

// SetFICClientID stores the external invoicing client reference.
func (r *CustomerRepo) SetFICClientID(ctx context.Context, customerID id.ID, ficClientID int64) error {
	q := r.Builder().
		Update(customerTable).
		Set("fic_client_id", ficClientID).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set fic client id: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set fic client id: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID.String())
	}

	return nil
}
