package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/tx"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
// Common CRUD is delegated to the embedded domain.CatalogService.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)

	return svc
}

// prepareForCreate generates the code when absent and guards VAT
// uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CLI")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate customer code: %w", err)
		}
		c.Code = code
	}

	return s.checkVATUnique(ctx, c)
}

func (s *Service) prepareForUpdate(ctx context.Context, c *Customer) error {
	return s.checkVATUnique(ctx, c)
}

func (s *Service) checkVATUnique(ctx context.Context, c *Customer) error {
	vat := c.NormalizedVAT()
	if vat == "" {
		return nil
	}

	existing, err := s.repo.FindByVAT(ctx, vat)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("customer with this VAT number already exists").
			WithDetail("vatNumber", vat)
	}
	return nil
}

// FindByVAT retrieves a customer by VAT number.
func (s *Service) FindByVAT(ctx context.Context, vat string) (*Customer, error) {
	return s.repo.FindByVAT(ctx, vat)
}

// LinkFICClient stores the Fatture in Cloud client id after the first
// successful invoicing sync.
func (s *Service) LinkFICClient(ctx context.Context, customerID id.ID, ficClientID int64) error {
	return s.repo.SetFICClientID(ctx, customerID, ficClientID)
}
