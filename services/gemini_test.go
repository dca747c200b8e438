package services

import (
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain object",
			raw:  `{"amount": 450.9}`,
			want: `{"amount": 450.9}`,
		},
		{
			name: "fenced object",
			raw:  "```json\n{\"amount\": 450.9}\n```",
			want: `{"amount": 450.9}`,
		},
		{
			name: "prose around array",
			raw:  "Aqui está a lista:\n[{\"name\": \"Cimento CP-II\"}]\nEspero ter ajudado!",
			want: `[{"name": "Cimento CP-II"}]`,
		},
		{
			name: "bare fences",
			raw:  "```\n[]\n```",
			want: "[]",
		},
		{
			name: "no json at all",
			raw:  "não consegui ler a imagem",
			want: "não consegui ler a imagem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveCategory(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Pisos", Type: models.ExpenseTypeMaterial},
		{ID: 2, Name: "Pinturas", Type: models.ExpenseTypeMaterial},
		{ID: 3, Name: "Mão de Obra (Pedreiro/Servente/Mestre)", Type: models.ExpenseTypeLabor},
	}

	t.Run("exact match", func(t *testing.T) {
		id, ok := ResolveCategory(categories, "Pisos")
		if !ok || id != 1 {
			t.Errorf("got (%d, %v), want (1, true)", id, ok)
		}
	})

	t.Run("case drift", func(t *testing.T) {
		id, ok := ResolveCategory(categories, "pinturas")
		if !ok || id != 2 {
			t.Errorf("got (%d, %v), want (2, true)", id, ok)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, ok := ResolveCategory(categories, "Jardinagem"); ok {
			t.Error("expected no match for unknown category name")
		}
	})
}
