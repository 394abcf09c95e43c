package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/apperror"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// Loader fetches the published CSV feed and installs it into an
// Index. Load runs once per process: a successful load makes further
// Load calls no-ops, a failed one keeps the error available for the
// status endpoint and allows a retry. Reload always refetches.
type Loader struct {
	url    string
	client *http.Client
	index  *Index
	log    *logger.Logger

	mu      sync.Mutex
	lastErr error
}

// NewLoader creates a loader for the given feed URL.
func NewLoader(url string, index *Index, client *http.Client, log *logger.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logger.Default()
	}
	return &Loader{
		url:    url,
		client: client,
		index:  index,
		log:    log.WithComponent("catalog-loader"),
	}
}

// Load fetches, parses and installs the feed. Safe for concurrent use.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index.Loaded() {
		return nil
	}

	return l.refetch(ctx)
}

// Reload refetches the feed even when the index is already loaded.
// The published prices occasionally change mid-season; staff trigger
// this instead of restarting the process.
func (l *Loader) Reload(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.refetch(ctx)
}

// refetch is called with l.mu held. A failed refetch leaves the
// current index content untouched.
func (l *Loader) refetch(ctx context.Context) error {
	rows, err := l.fetch(ctx)
	if err != nil {
		l.lastErr = err
		l.log.WithContext(ctx).Errorw("catalog load failed", "url", l.url, "error", err)
		return apperror.NewCatalogLoad(err)
	}

	l.index.Install(rows)
	l.lastErr = nil
	l.log.WithContext(ctx).Infow("catalog loaded", "codes", l.index.Len())
	return nil
}

// Err returns the error of the last failed load, or nil after a
// success or before any attempt.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *Loader) fetch(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog feed contained no usable rows")
	}
	return rows, nil
}
