package analytics

import (
	"strings"

	"github.com/flavioricotta/Obracontrolia/models"
)

// stageOpportunities maps a stage-name keyword to the advisory text sellers
// see when no catalog product matches the stage label directly.
var stageOpportunities = []struct {
	keyword string
	advice  string
}{
	{"Fundação", "Ofertar Cimento e Aço (Alta demanda na fase de Fundação)"},
	{"Acabamento", "Ofertar Porcelanatos, Tintas e Metais (Fase de acabamento)"},
	{"Alvenaria", "Ofertar Blocos, Argamassa e Portas (Fase de fechamento)"},
	{"Instalações", "Ofertar Fios, Cabos, Tubos e Conexões (Fase de instalações)"},
	{"Pintura", "Ofertar Tintas, Rolos e Lixas (Fase de pintura)"},
	{"Estrutura", "Ofertar Vigas, Vergalhões e Concreto (Fase estrutural)"},
}

// StageSuggestion is what a project's current stage suggests buying.
type StageSuggestion struct {
	Stage    string           `json:"stage"`
	Products []models.Product `json:"products"`
	Advice   string           `json:"advice,omitempty"`
}

// SuggestForStage picks products whose category equals the stage label,
// case-sensitive. When nothing matches, a keyword lookup on the stage name
// produces advisory text instead; an unknown stage yields an empty
// suggestion set.
func SuggestForStage(products []models.Product, stage string) StageSuggestion {
	suggestion := StageSuggestion{Stage: stage}
	if stage == "" {
		return suggestion
	}

	for _, p := range products {
		if p.Category == stage {
			suggestion.Products = append(suggestion.Products, p)
		}
	}
	if len(suggestion.Products) > 0 {
		return suggestion
	}

	for _, opp := range stageOpportunities {
		if strings.Contains(stage, opp.keyword) {
			suggestion.Advice = opp.advice
			break
		}
	}
	return suggestion
}

// StageProgress returns the completed share of the fixed sequence as a
// whole percentage.
func StageProgress(completed []int) int {
	done := 0
	for _, id := range completed {
		if models.ValidStageID(id) {
			done++
		}
	}
	return done * 100 / len(models.Stages)
}
