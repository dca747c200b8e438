package models

// Stage is one step of the fixed construction sequence shown on the
// progress screen and used for marketplace suggestions.
type Stage struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Stages is the fixed 8-stage construction sequence, in order.
var Stages = []Stage{
	{ID: 1, Title: "Planejamento e Projetos", Description: "Definição arquitetônica e aprovação legal."},
	{ID: 2, Title: "Preparação do Terreno", Description: "Limpeza, terraplanagem e canteiro de obras."},
	{ID: 3, Title: "Fundação", Description: "Alicerce, sapatas e concretagem inicial."},
	{ID: 4, Title: "Estrutura", Description: "Pilares, vigas e lajes."},
	{ID: 5, Title: "Alvenaria e Fechamento", Description: "Levantamento de paredes e divisórias."},
	{ID: 6, Title: "Instalações", Description: "Elétrica, hidráulica e infraestrutura de ar."},
	{ID: 7, Title: "Acabamentos e Revestimentos", Description: "Pisos, azulejos, gesso e bancadas."},
	{ID: 8, Title: "Pintura e Entrega", Description: "Pintura final, limpeza e vistoria."},
}

// StageTitle returns the label of a stage id, or "" for an unknown id.
func StageTitle(id int) string {
	for _, s := range Stages {
		if s.ID == id {
			return s.Title
		}
	}
	return ""
}

// ValidStageID reports whether id belongs to the fixed sequence.
func ValidStageID(id int) bool {
	return id >= 1 && id <= len(Stages)
}

// CurrentStageTitle derives the current stage label from the highest
// completed stage id. Empty when nothing is completed.
func CurrentStageTitle(completed []int) string {
	highest := 0
	for _, id := range completed {
		if ValidStageID(id) && id > highest {
			highest = id
		}
	}
	if highest == 0 {
		return ""
	}
	return StageTitle(highest)
}

// ToggleStage flips one stage in a completed set, keeping ids unique and
// returning the new set in ascending order.
func ToggleStage(completed []int, id int) []int {
	out := make([]int, 0, len(completed)+1)
	found := false
	for _, c := range completed {
		if c == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, id)
	}
	// keep ascending so the stored set reads like the sequence itself
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
