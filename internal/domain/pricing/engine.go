package pricing

import (
	"context"
	"strings"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// Engine dispatches a line input to the strategy for a price-list
// version. The catalog index is injected, never reached for globally,
// so tests can run against synthetic catalogs.
type Engine struct {
	catalog CodeLookup
	log     *logger.Logger
}

// NewEngine creates a pricing engine over the given catalog index.
func NewEngine(catalog CodeLookup, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Default()
	}
	return &Engine{catalog: catalog, log: log.WithComponent("pricing")}
}

// Price computes unit and extended price for one line under a version.
//
// Before the catalog is loaded every call returns a zero result rather
// than an error: callers defer price display on the loaded flag and a
// drafted quote can be repriced later.
func (e *Engine) Price(ctx context.Context, in LineInput, version Version) Result {
	if !e.catalog.Loaded() {
		return ZeroResult()
	}

	cfg, ok := strategyConfigs[version]
	if !ok {
		// Unknown Version values behave like the default list.
		cfg = strategyConfigs[List2026A]
	}

	return e.compute(ctx, in, cfg)
}

// PriceForList is the string-keyed entry point used by HTTP and quote
// callers: the version identifier is parsed with the documented
// default-to-2026-a fallback.
func (e *Engine) PriceForList(ctx context.Context, in LineInput, activeList string) Result {
	return e.Price(ctx, in, ParseVersion(activeList))
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
