package match

import (
	"context"
	"errors"
	"testing"

	"github.com/shopsync/shopsync/internal/embedding"
	"github.com/shopsync/shopsync/internal/models"
	"go.uber.org/zap"
)

type failingScorer struct{}

func (failingScorer) Name() string { return "embedding" }
func (failingScorer) ScoreMatrix(ctx context.Context, a, b []string) ([][]float64, error) {
	return nil, errors.New("model not loaded")
}

func price(v float64) *float64 { return &v }

func listing(title string, p float64, source models.Source) models.Listing {
	return models.Listing{Title: title, Price: price(p), Source: source, Link: "https://example.com/" + string(source)}
}

func TestMatchPairsSameProduct(t *testing.T) {
	matcher := NewMatcher(NewEmbeddingScorer(embedding.NewMockEmbedder(384)), zap.NewNop())

	amazon := []models.Listing{
		listing("Apple iPhone 15 128GB Blue", 79900, models.SourceAmazon),
		listing("Samsung Galaxy S23 5G 256GB Phantom Black", 74999, models.SourceAmazon),
	}
	flipkart := []models.Listing{
		listing("Apple iPhone 15 (128 GB) Blue", 77999, models.SourceFlipkart),
		listing("OnePlus Nord CE 3 5G 128GB", 26999, models.SourceFlipkart),
	}

	products := matcher.Match(context.Background(), amazon, flipkart)
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}

	first := products[0]
	if !first.HasComparison {
		t.Fatal("matched product must lead the result")
	}
	if first.Title != "Apple iPhone 15 128GB Blue" {
		t.Errorf("matched title = %q", first.Title)
	}
	if first.AmazonPrice == nil || *first.AmazonPrice != 79900 {
		t.Error("amazon price missing on matched product")
	}
	if first.FlipkartPrice == nil || *first.FlipkartPrice != 77999 {
		t.Error("flipkart price missing on matched product")
	}
	if first.MatchConfidence <= 0 || first.MatchConfidence > 1 {
		t.Errorf("match confidence = %.3f, want (0,1]", first.MatchConfidence)
	}

	for _, p := range products[1:] {
		if p.HasComparison {
			t.Errorf("product %q should be unmatched", p.Title)
		}
	}
	for i, p := range products {
		if p.ID != i+1 {
			t.Errorf("product %d has id %d, want sequential from 1", i, p.ID)
		}
	}
}

func TestMatchNeverPairsVetoedListings(t *testing.T) {
	matcher := NewMatcher(NewEmbeddingScorer(embedding.NewMockEmbedder(384)), zap.NewNop())

	// Titles share nearly every word, so semantic similarity is high, but
	// the storage sizes conflict.
	amazon := []models.Listing{
		listing("Samsung Galaxy S23 5G 128GB Phantom Black", 64999, models.SourceAmazon),
	}
	flipkart := []models.Listing{
		listing("Samsung Galaxy S23 5G 256GB Phantom Black", 74999, models.SourceFlipkart),
	}

	products := matcher.Match(context.Background(), amazon, flipkart)
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2 unmatched", len(products))
	}
	for _, p := range products {
		if p.HasComparison {
			t.Fatalf("conflicting storage paired: %q", p.Title)
		}
	}
}

func TestMatchNoDoubleClaim(t *testing.T) {
	matcher := NewMatcher(NewEmbeddingScorer(embedding.NewMockEmbedder(384)), zap.NewNop())

	amazon := []models.Listing{
		listing("Apple iPhone 15 128GB Blue", 79900, models.SourceAmazon),
		listing("Apple iPhone 15 128GB Blue Smartphone", 79499, models.SourceAmazon),
	}
	flipkart := []models.Listing{
		listing("Apple iPhone 15 128GB Blue", 77999, models.SourceFlipkart),
	}

	products := matcher.Match(context.Background(), amazon, flipkart)
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	matched := 0
	for _, p := range products {
		if p.HasComparison {
			matched++
		}
	}
	if matched != 1 {
		t.Fatalf("%d products claim the single flipkart listing, want 1", matched)
	}
	// Greedy assignment: the first amazon listing wins the claim.
	if products[0].Title != "Apple iPhone 15 128GB Blue" {
		t.Errorf("claim went to %q, want first listing", products[0].Title)
	}
}

func TestMatchFallsBackToLexical(t *testing.T) {
	matcher := NewMatcher(failingScorer{}, zap.NewNop())

	amazon := []models.Listing{
		listing("Apple iPhone 15 128GB Blue", 79900, models.SourceAmazon),
	}
	flipkart := []models.Listing{
		listing("Apple iPhone 15 (128 GB) - Blue", 77999, models.SourceFlipkart),
	}

	products := matcher.Match(context.Background(), amazon, flipkart)
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if !products[0].HasComparison {
		t.Fatal("lexical fallback failed to pair identical products")
	}
}

func TestMatchEmptySides(t *testing.T) {
	matcher := NewMatcher(NewEmbeddingScorer(embedding.NewMockEmbedder(384)), zap.NewNop())

	products := matcher.Match(context.Background(), nil, nil)
	if len(products) != 0 {
		t.Fatalf("got %d products for empty input, want 0", len(products))
	}

	amazon := []models.Listing{listing("Apple iPhone 15 128GB", 79900, models.SourceAmazon)}
	products = matcher.Match(context.Background(), amazon, nil)
	if len(products) != 1 || products[0].HasComparison {
		t.Fatal("amazon-only input must yield one unmatched product")
	}

	flipkart := []models.Listing{listing("Apple iPhone 15 128GB", 77999, models.SourceFlipkart)}
	products = matcher.Match(context.Background(), nil, flipkart)
	if len(products) != 1 || products[0].HasComparison {
		t.Fatal("flipkart-only input must yield one unmatched product")
	}
	if products[0].FlipkartPrice == nil {
		t.Error("flipkart price missing on flipkart-only product")
	}
}

func TestMatchDeterministic(t *testing.T) {
	matcher := NewMatcher(NewEmbeddingScorer(embedding.NewMockEmbedder(384)), zap.NewNop())

	amazon := []models.Listing{
		listing("Apple iPhone 15 128GB Blue", 79900, models.SourceAmazon),
		listing("Samsung 43 inch Crystal 4K Smart TV", 32999, models.SourceAmazon),
	}
	flipkart := []models.Listing{
		listing("Samsung 108 cm (43 inches) Crystal 4K Smart TV", 31999, models.SourceFlipkart),
		listing("Apple iPhone 15 128GB Blue", 77999, models.SourceFlipkart),
	}

	first := matcher.Match(context.Background(), amazon, flipkart)
	for run := 0; run < 5; run++ {
		again := matcher.Match(context.Background(), amazon, flipkart)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d products, want %d", run, len(again), len(first))
		}
		for i := range again {
			if again[i].Title != first[i].Title || again[i].ID != first[i].ID ||
				again[i].HasComparison != first[i].HasComparison {
				t.Fatalf("run %d: product %d differs: %+v vs %+v",
					run, i, again[i], first[i])
			}
		}
	}
}
