// Package catalog holds the in-memory surcharge price index the
// pricing engine consults. The index is fed from a published CSV feed
// and is loaded at most once per process lifetime.
package catalog

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// Entry is a leaf of the browse tree: one purchasable configuration.
type Entry struct {
	Code  string      `json:"code"`
	Price types.Money `json:"price"`
	Group string      `json:"group"`
}

// Tree is category -> model -> size -> finish -> entry. It only serves
// UI selection, the pricing algorithms read the flat code table.
type Tree map[string]map[string]map[string]map[string]Entry

// Index maps catalog codes to prices. A zero Index reports not loaded
// and prices every code at zero.
type Index struct {
	mu     sync.RWMutex
	codes  map[string]types.Money
	tree   Tree
	loaded bool

	misses atomic.Int64
	log    *logger.Logger
}

// NewIndex creates an empty, not-yet-loaded index.
func NewIndex(log *logger.Logger) *Index {
	if log == nil {
		log = logger.Default()
	}
	return &Index{log: log.WithComponent("catalog")}
}

// Install replaces the index content with the given rows and marks the
// index loaded. Later rows win on duplicate codes, matching the feed's
// append-and-correct publishing habit.
func (i *Index) Install(rows []Row) {
	codes := make(map[string]types.Money, len(rows))
	tree := make(Tree)

	for _, r := range rows {
		codes[r.Code] = r.Price

		models, ok := tree[r.Category]
		if !ok {
			models = make(map[string]map[string]map[string]Entry)
			tree[r.Category] = models
		}
		sizes, ok := models[r.Model]
		if !ok {
			sizes = make(map[string]map[string]Entry)
			models[r.Model] = sizes
		}
		finishes, ok := sizes[r.Size]
		if !ok {
			finishes = make(map[string]Entry)
			sizes[r.Size] = finishes
		}
		finishes[r.Finish] = Entry{Code: r.Code, Price: r.Price, Group: r.FinishGroup}
	}

	i.mu.Lock()
	i.codes = codes
	i.tree = tree
	i.loaded = true
	i.mu.Unlock()
}

// Lookup returns the price for a code, or zero for an unknown code.
// Misses are logged and counted: a surcharge silently pricing at zero
// under-prices an order, so the counter is watched in production.
func (i *Index) Lookup(ctx context.Context, code string) types.Money {
	key := strings.ToUpper(strings.TrimSpace(code))

	i.mu.RLock()
	price, ok := i.codes[key]
	loaded := i.loaded
	i.mu.RUnlock()

	if !loaded {
		return types.Zero()
	}
	if !ok {
		i.misses.Add(1)
		i.log.WithContext(ctx).Warnw("catalog code not mapped, pricing at zero", "code", key)
		return types.Zero()
	}
	return price
}

// Contains reports whether a code is mapped. Unlike Lookup it does
// not count a miss; the API code probe uses it.
func (i *Index) Contains(code string) bool {
	key := strings.ToUpper(strings.TrimSpace(code))

	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.codes[key]
	return ok
}

// Loaded reports whether Install has completed at least once.
func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

// Misses returns the number of lookups that resolved to an unmapped
// code since process start.
func (i *Index) Misses() int64 {
	return i.misses.Load()
}

// Len returns the number of distinct codes in the index.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.codes)
}

// BrowseTree returns the selection tree. Callers must not mutate it.
func (i *Index) BrowseTree() Tree {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.tree
}
