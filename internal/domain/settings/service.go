package settings

import (
	"context"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/tx"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
)

// Repository persists the singleton settings record.
type Repository interface {
	// Get returns the settings record, or not-found before seeding.
	Get(ctx context.Context) (*PricingSettings, error)

	// Upsert writes the record (insert on first save).
	Upsert(ctx context.Context, s *PricingSettings) error
}

// Service provides access to the global pricing settings.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the current settings. A missing record resolves to
// defaults so pricing works on a fresh installation.
func (s *Service) Get(ctx context.Context) (*PricingSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return NewPricingSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Update validates and saves the settings record.
func (s *Service) Update(ctx context.Context, settings *PricingSettings) error {
	if err := settings.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, settings)
	})
}

// ResolveFor computes the pricing context for a customer's overrides.
func (s *Service) ResolveFor(ctx context.Context, overrides pricing.CustomerOverrides) (pricing.Context, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return pricing.Context{}, err
	}
	return pricing.Resolve(settings.ResolverSettings(), overrides), nil
}
