package category

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

type fakeClassifier struct {
	calls    int
	response string
	err      error
	got      domain.Product
}

func (f *fakeClassifier) Classify(_ context.Context, p domain.Product) (json.RawMessage, error) {
	f.calls++
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func TestResolve_TagMatchSkipsClassifier(t *testing.T) {
	fake := &fakeClassifier{response: `{"category":"electronics"}`}
	r := NewResolver(fake, zap.NewNop())

	got := r.Resolve(context.Background(), domain.Product{Tags: "summer, fashion essentials", ProductType: "Gadgets"})

	if got.Category != "fashion" || got.Source != domain.CategorySourceTags {
		t.Fatalf("expected fashion from tags, got %+v", got)
	}
	if fake.calls != 0 {
		t.Fatalf("expected classifier not to be called, got %d calls", fake.calls)
	}
}

func TestResolve_TagOrderBreaksTies(t *testing.T) {
	r := NewResolver(nil, nil)
	got := r.Resolve(context.Background(), domain.Product{Tags: "electronics, furniture"})
	if got.Category != "furniture" {
		t.Fatalf("expected furniture to win by list order, got %q", got.Category)
	}
}

func TestResolve_UsesClassifierWithoutVariants(t *testing.T) {
	fake := &fakeClassifier{response: `{"data":{"category":"Fitness"}}`}
	r := NewResolver(fake, zap.NewNop())

	got := r.Resolve(context.Background(), domain.Product{
		Title:    "Kettlebell",
		Tags:     "new",
		Variants: []domain.Variant{{ID: 1}},
	})

	if got.Category != "fitness" || got.Source != domain.CategorySourceAI {
		t.Fatalf("expected fitness from classifier, got %+v", got)
	}
	if fake.calls != 1 || fake.got.Variants != nil || fake.got.Title != "Kettlebell" {
		t.Fatalf("expected one call with variants stripped, got %d calls, %+v", fake.calls, fake.got)
	}
}

func TestResolve_FallsBack(t *testing.T) {
	tests := []struct {
		Title          string
		Classifier     Classifier
		ProductType    string
		ExpectedResult Resolution
	}{
		{
			Title:          "classifier error uses product type",
			Classifier:     &fakeClassifier{err: errors.New("timeout")},
			ProductType:    "Clothing",
			ExpectedResult: Resolution{Category: "fashion", Source: domain.CategorySourceProductType},
		},
		{
			Title:          "unusable answer uses product type",
			Classifier:     &fakeClassifier{response: `{"status":"ok"}`},
			ProductType:    "beverages",
			ExpectedResult: Resolution{Category: "food", Source: domain.CategorySourceProductType},
		},
		{
			Title:          "no classifier and unmapped type",
			ProductType:    "Widgets",
			ExpectedResult: Resolution{Category: General, Source: domain.CategorySourceDefault},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			got := NewResolver(tt.Classifier, zap.NewNop()).Resolve(context.Background(), domain.Product{ProductType: tt.ProductType})
			if got != tt.ExpectedResult {
				t.Fatalf("expected %+v, got %+v", tt.ExpectedResult, got)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		Title    string
		Raw      string
		Expected string
		Found    bool
	}{
		{Title: "training data list", Raw: `{"categories_in_training_data":["Furniture","food"]}`, Expected: "furniture", Found: true},
		{Title: "plain category", Raw: `{"category":"food"}`, Expected: "food", Found: true},
		{Title: "nested data", Raw: `{"data":{"category":"fashion"}}`, Expected: "fashion", Found: true},
		{Title: "predicted", Raw: `{"predicted_category":"fitness"}`, Expected: "fitness", Found: true},
		{Title: "classification", Raw: `{"classification":"electronics"}`, Expected: "electronics", Found: true},
		{Title: "nested result", Raw: `{"result":{"category":"food"}}`, Expected: "food", Found: true},
		{Title: "first populated wins", Raw: `{"categories_in_training_data":[],"category":"","predicted_category":"fitness","classification":"food"}`, Expected: "fitness", Found: true},
		{Title: "wrong types", Raw: `{"category":3,"data":"x"}`, Found: false},
		{Title: "not json", Raw: `nope`, Found: false},
		{Title: "empty", Raw: ``, Found: false},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			got, ok := Extract(json.RawMessage(tt.Raw))
			if ok != tt.Found || got != tt.Expected {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.Expected, tt.Found, got, ok)
			}
		})
	}
}
