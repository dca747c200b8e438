package analytics

import (
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func TestSuggestForStage(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Cimento", Category: "Fundação"},
		{ID: 2, Name: "Tinta", Category: "Pinturas"},
	}

	t.Run("exact category match", func(t *testing.T) {
		got := SuggestForStage(products, "Fundação")
		if len(got.Products) != 1 || got.Products[0].ID != 1 {
			t.Errorf("products = %v", got.Products)
		}
		if got.Advice != "" {
			t.Errorf("advice should be empty when products match, got %q", got.Advice)
		}
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		got := SuggestForStage([]models.Product{{Category: "fundação"}}, "Fundação")
		if len(got.Products) != 0 {
			t.Error("lowercase category must not match")
		}
		// falls through to the keyword table instead
		if got.Advice == "" {
			t.Error("expected keyword fallback advice")
		}
	})

	t.Run("keyword fallback on stage substring", func(t *testing.T) {
		got := SuggestForStage(products, "Acabamentos e Revestimentos")
		if got.Advice != "Ofertar Porcelanatos, Tintas e Metais (Fase de acabamento)" {
			t.Errorf("advice = %q", got.Advice)
		}
	})

	t.Run("unknown stage yields empty set", func(t *testing.T) {
		got := SuggestForStage(products, "Paisagismo")
		if len(got.Products) != 0 || got.Advice != "" {
			t.Errorf("got %+v, want empty suggestion", got)
		}
	})

	t.Run("empty stage", func(t *testing.T) {
		got := SuggestForStage(products, "")
		if len(got.Products) != 0 || got.Advice != "" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestStageProgress(t *testing.T) {
	if got := StageProgress(nil); got != 0 {
		t.Errorf("empty progress = %d", got)
	}
	if got := StageProgress([]int{1, 2, 3, 4}); got != 50 {
		t.Errorf("half progress = %d, want 50", got)
	}
	if got := StageProgress([]int{1, 2, 3, 4, 5, 6, 7, 8}); got != 100 {
		t.Errorf("full progress = %d, want 100", got)
	}
	if got := StageProgress([]int{1, 99}); got != 12 {
		t.Errorf("invalid ids must not count, got %d", got)
	}
}
