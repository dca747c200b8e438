package models

import (
	"reflect"
	"testing"
)

func TestCurrentStageTitle(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		want      string
	}{
		{"empty", nil, ""},
		{"single", []int{1}, "Planejamento e Projetos"},
		{"highest wins", []int{1, 2, 3}, "Fundação"},
		{"out of order", []int{5, 2, 4}, "Alvenaria e Fechamento"},
		{"unknown ids ignored", []int{0, 99}, ""},
		{"full sequence", []int{1, 2, 3, 4, 5, 6, 7, 8}, "Pintura e Entrega"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStageTitle(tt.completed); got != tt.want {
				t.Errorf("CurrentStageTitle(%v) = %q, want %q", tt.completed, got, tt.want)
			}
		})
	}
}

func TestToggleStage(t *testing.T) {
	t.Run("completing stage 3 with 1 and 2 done", func(t *testing.T) {
		got := ToggleStage([]int{1, 2}, 3)
		if !reflect.DeepEqual(got, []int{1, 2, 3}) {
			t.Errorf("got %v, want [1 2 3]", got)
		}
		if title := CurrentStageTitle(got); title != "Fundação" {
			t.Errorf("current stage = %q, want Fundação", title)
		}
	})

	t.Run("toggling off removes the id", func(t *testing.T) {
		got := ToggleStage([]int{1, 2, 3}, 2)
		if !reflect.DeepEqual(got, []int{1, 3}) {
			t.Errorf("got %v, want [1 3]", got)
		}
	})

	t.Run("result stays sorted", func(t *testing.T) {
		got := ToggleStage([]int{5, 1}, 3)
		if !reflect.DeepEqual(got, []int{1, 3, 5}) {
			t.Errorf("got %v, want [1 3 5]", got)
		}
	})
}

func TestStageTitle(t *testing.T) {
	if got := StageTitle(3); got != "Fundação" {
		t.Errorf("StageTitle(3) = %q", got)
	}
	if got := StageTitle(9); got != "" {
		t.Errorf("StageTitle(9) = %q, want empty", got)
	}
}
