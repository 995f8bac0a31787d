package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func price(v float64) *float64 { return &v }

func sampleProducts() []models.UnifiedProduct {
	return []models.UnifiedProduct{
		{
			ID: 1, Title: "Apple iPhone 15 128GB Blue",
			AmazonPrice: price(79900), FlipkartPrice: price(77999),
			HasComparison: true, MatchConfidence: 0.9,
		},
		{
			ID: 2, Title: "Samsung Galaxy S23 5G 256GB",
			AmazonPrice: price(74999),
		},
	}
}

func TestSaveAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "iphone 15", sampleProducts()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	products, err := store.Lookup(ctx, "iphone", 10)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("lookup found nothing for indexed title")
	}
	if products[0].Title != "Apple iPhone 15 128GB Blue" {
		t.Errorf("top result = %q", products[0].Title)
	}
	if products[0].ID != 1 {
		t.Errorf("ids not renumbered from 1: %d", products[0].ID)
	}
	if !products[0].HasComparison || products[0].FlipkartPrice == nil {
		t.Error("comparison fields lost in round trip")
	}
}

func TestLookupExactQueryFallback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "galaxy s23", sampleProducts()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// An exact query match serves the complete stored snapshot, not just the
	// products whose titles happen to overlap the query terms.
	products, err := store.Lookup(ctx, "galaxy s23", 10)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	titles := map[string]bool{}
	for _, p := range products {
		titles[p.Title] = true
	}
	if !titles["Apple iPhone 15 128GB Blue"] {
		t.Error("snapshot product without query-term overlap was dropped")
	}
}

func TestSeedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "fallback_data.json")
	data, _ := json.Marshal(seedFile{Products: sampleProducts()})
	if err := os.WriteFile(seedPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.LoadSeed(ctx, seedPath); err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	products, err := store.Lookup(ctx, "nothing indexed matches this zqxw", 10)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("seed fallback served %d products, want 2", len(products))
	}

	// Reload replaces rather than appends.
	if err := store.LoadSeed(ctx, seedPath); err != nil {
		t.Fatalf("LoadSeed again: %v", err)
	}
	products, err = store.latestSnapshotProducts(ctx, seedQuery)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("seed grew to %d products on reload, want 2", len(products))
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	store := newTestStore(t)
	if err := store.LoadSeed(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("missing seed file should not error: %v", err)
	}
}

func TestPruneKeepsSeed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.ReplaceSeed(ctx, sampleProducts()); err != nil {
		t.Fatalf("ReplaceSeed: %v", err)
	}
	if err := store.SaveSnapshot(ctx, "old search", sampleProducts()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// Zero retention makes every non-seed snapshot stale.
	time.Sleep(10 * time.Millisecond)
	removed, err := store.Prune(ctx, 0)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("pruned %d snapshots, want 1", removed)
	}

	seed, err := store.latestSnapshotProducts(ctx, seedQuery)
	if err != nil {
		t.Fatal(err)
	}
	if len(seed) != 2 {
		t.Errorf("seed snapshot lost to pruning: %d products", len(seed))
	}
}
