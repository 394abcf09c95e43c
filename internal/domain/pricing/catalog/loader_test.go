package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

// feedServer serves a swappable CSV body and counts fetches.
type feedServer struct {
	mu      sync.Mutex
	body    string
	fetches int
}

func (f *feedServer) set(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body = body
}

func (f *feedServer) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	w.Write([]byte(f.body))
}

func (f *feedServer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func TestLoaderLoadOncePerProcess(t *testing.T) {
	feed := &feedServer{body: "CATEGORIA,TIPO,CODICE,PREZZO\nCanalino,C111,S001,\"5,00\"\n"}
	server := httptest.NewServer(feed)
	defer server.Close()

	index := NewIndex(nil)
	loader := NewLoader(server.URL, index, server.Client(), nil)

	ctx := context.Background()
	if err := loader.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !index.Loaded() || index.Len() != 1 {
		t.Fatalf("index not installed: loaded=%v len=%d", index.Loaded(), index.Len())
	}

	// A second Load must not hit the feed again.
	if err := loader.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if feed.count() != 1 {
		t.Errorf("feed fetched %d times, want 1", feed.count())
	}
}

func TestLoaderReloadRefetches(t *testing.T) {
	feed := &feedServer{body: "CATEGORIA,TIPO,CODICE,PREZZO\nCanalino,C111,S001,\"5,00\"\n"}
	server := httptest.NewServer(feed)
	defer server.Close()

	index := NewIndex(nil)
	loader := NewLoader(server.URL, index, server.Client(), nil)

	ctx := context.Background()
	if err := loader.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The published price changes; Reload must pick it up even though
	// the index is already loaded.
	feed.set("CATEGORIA,TIPO,CODICE,PREZZO\nCanalino,C111,S001,\"6,50\"\n")
	if err := loader.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if got := index.Lookup(ctx, "S001"); !got.Equal(types.MustMoney("6.50")) {
		t.Errorf("S001 after reload = %s, want 6.50", got)
	}
	if feed.count() != 2 {
		t.Errorf("feed fetched %d times, want 2", feed.count())
	}
}

func TestLoaderFailedFetchKeepsIndexAndError(t *testing.T) {
	feed := &feedServer{body: "CATEGORIA,TIPO,CODICE,PREZZO\nCanalino,C111,S001,\"5,00\"\n"}
	server := httptest.NewServer(feed)

	index := NewIndex(nil)
	loader := NewLoader(server.URL, index, server.Client(), nil)

	ctx := context.Background()
	if err := loader.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	server.Close()
	if err := loader.Reload(ctx); err == nil {
		t.Fatal("Reload against a dead feed should fail")
	}
	if loader.Err() == nil {
		t.Error("Err() should report the failed reload")
	}
	// The stale snapshot keeps serving.
	if got := index.Lookup(ctx, "S001"); !got.Equal(types.MustMoney("5.00")) {
		t.Errorf("S001 after failed reload = %s, want 5.00", got)
	}
}
