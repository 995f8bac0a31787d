package aggregate

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

type fakeDetailer struct {
	byLink map[string]map[string]string
}

func (f *fakeDetailer) Details(ctx context.Context, link string) map[string]string {
	return f.byLink[link]
}

func TestCompareMergesSpecs(t *testing.T) {
	detailer := &fakeDetailer{byLink: map[string]map[string]string{
		"https://www.amazon.in/dp/A1": {
			"Brand":   "Apple",
			"Storage": "128 GB",
		},
		"https://www.flipkart.com/p/F1": {
			"Brand":   "APPLE (flipkart)",
			"Battery": "3349 mAh",
		},
	}}
	comparer := NewComparer(detailer, zap.NewNop())

	resp := comparer.Compare(context.Background(), models.CompareRequest{
		Products: []models.UnifiedProduct{
			{Title: "Apple iPhone 15", AmazonLink: "https://www.amazon.in/dp/A1", FlipkartLink: "https://www.flipkart.com/p/F1"},
			{Title: "Samsung Galaxy S23"},
		},
	})
	if !resp.Success {
		t.Fatalf("compare failed: %s", resp.Error)
	}
	if len(resp.Comparison) != 2 {
		t.Fatalf("got %d compared products, want 2", len(resp.Comparison))
	}

	specs := resp.Comparison[0].Specs
	if specs["Brand"] != "Apple" {
		t.Errorf("amazon spec should win collisions, got %q", specs["Brand"])
	}
	if specs["Battery"] != "3349 mAh" {
		t.Errorf("flipkart-only spec missing: %v", specs)
	}
	if len(resp.Comparison[1].Specs) != 0 {
		t.Errorf("linkless product should have empty specs: %v", resp.Comparison[1].Specs)
	}
}

func TestCompareValidatesCount(t *testing.T) {
	comparer := NewComparer(&fakeDetailer{}, zap.NewNop())

	resp := comparer.Compare(context.Background(), models.CompareRequest{
		Products: []models.UnifiedProduct{{Title: "only one"}},
	})
	if resp.Success || resp.Error == "" {
		t.Fatal("single product compare must fail validation")
	}

	many := make([]models.UnifiedProduct, 5)
	resp = comparer.Compare(context.Background(), models.CompareRequest{Products: many})
	if resp.Success || resp.Error == "" {
		t.Fatal("five product compare must fail validation")
	}
}
