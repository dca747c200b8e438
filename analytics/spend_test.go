package analytics

import (
	"math"
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalSpentAndUtilization(t *testing.T) {
	expenses := []models.Expense{
		{AmountPaid: 3000, CategoryID: 1},
		{AmountPaid: 2000, CategoryID: 2},
	}

	if got := TotalSpent(expenses); got != 5000 {
		t.Errorf("TotalSpent = %v, want 5000", got)
	}
	if got := BudgetUtilization(10000, expenses); got != 50 {
		t.Errorf("BudgetUtilization = %v, want 50", got)
	}
}

func TestBudgetUtilizationEdges(t *testing.T) {
	tests := []struct {
		name     string
		budget   float64
		expenses []models.Expense
		want     float64
	}{
		{"empty expenses", 1000, nil, 0},
		{"zero budget never divides", 0, []models.Expense{{AmountPaid: 500}}, 0},
		{"negative budget treated as zero", -100, []models.Expense{{AmountPaid: 500}}, 0},
		{"over budget exceeds 100", 100, []models.Expense{{AmountPaid: 250}}, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetUtilization(tt.budget, tt.expenses); !almostEqual(got, tt.want) {
				t.Errorf("BudgetUtilization(%v) = %v, want %v", tt.budget, got, tt.want)
			}
		})
	}
}

func TestSplitLaborMaterial(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Mão de Obra", Type: models.ExpenseTypeLabor},
		{ID: 2, Name: "Pisos", Type: models.ExpenseTypeMaterial},
	}
	expenses := []models.Expense{
		{AmountPaid: 3000, CategoryID: 1},
		{AmountPaid: 2000, CategoryID: 2},
	}

	split := SplitLaborMaterial(expenses, categories)
	if split.Labor != 3000 || split.Material != 2000 {
		t.Errorf("split = %+v, want labor 3000 / material 2000", split)
	}
}

func TestSplitFollowsCurrentCategoryType(t *testing.T) {
	// The split must be computed from the category type at read time, so
	// re-typing a category moves its historical expenses too.
	expenses := []models.Expense{{AmountPaid: 100, CategoryID: 7}}

	before := SplitLaborMaterial(expenses, []models.Category{{ID: 7, Type: models.ExpenseTypeMaterial}})
	after := SplitLaborMaterial(expenses, []models.Category{{ID: 7, Type: models.ExpenseTypeLabor}})

	if before.Material != 100 || before.Labor != 0 {
		t.Errorf("before = %+v", before)
	}
	if after.Labor != 100 || after.Material != 0 {
		t.Errorf("after = %+v", after)
	}
}

func TestSpendByCategory(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Pisos"},
		{ID: 2, Name: "Pinturas"},
		{ID: 3, Name: "Esquadrias"},
	}
	expenses := []models.Expense{
		{AmountPaid: 300, CategoryID: 1},
		{AmountPaid: 200, CategoryID: 1},
		{AmountPaid: 150, CategoryID: 2},
		{AmountPaid: 50, CategoryID: 99}, // orphaned category
	}

	buckets := SpendByCategory(expenses, categories)

	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets (zero-total Esquadrias dropped), got %v", buckets)
	}
	if buckets[0].Name != "Pisos" || buckets[0].Value != 500 {
		t.Errorf("bucket 0 = %+v", buckets[0])
	}
	if buckets[1].Name != "Pinturas" || buckets[1].Value != 150 {
		t.Errorf("bucket 1 = %+v", buckets[1])
	}
	if buckets[2].Name != FallbackSupplier || buckets[2].Value != 50 {
		t.Errorf("orphaned bucket = %+v", buckets[2])
	}
}

func TestSpendBySupplier(t *testing.T) {
	expenses := []models.Expense{
		{AmountPaid: 100, Supplier: "Leroy"},
		{AmountPaid: 400, Supplier: "Votoran"},
		{AmountPaid: 250, Supplier: ""},
		{AmountPaid: 50, Supplier: "Leroy"},
	}

	buckets := SpendBySupplier(expenses, 0)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 suppliers, got %v", buckets)
	}
	if buckets[0].Name != "Votoran" || buckets[0].Value != 400 {
		t.Errorf("top supplier = %+v", buckets[0])
	}
	if buckets[1].Name != FallbackSupplier || buckets[1].Value != 250 {
		t.Errorf("blank supplier bucket = %+v", buckets[1])
	}

	if top := SpendBySupplier(expenses, 1); len(top) != 1 || top[0].Name != "Votoran" {
		t.Errorf("limit 1 = %v", top)
	}
}

func TestProjectStats(t *testing.T) {
	project := models.Project{Budget: 10000, SqMeters: 100}
	expenses := []models.Expense{{AmountPaid: 3000}, {AmountPaid: 2000}}

	stats := ProjectStats(project, expenses)
	if stats.TotalSpent != 5000 || stats.RemainingBudget != 5000 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.PercentageUsed != 50 {
		t.Errorf("percentage = %v", stats.PercentageUsed)
	}
	if stats.CostPerSqMeter != 50 {
		t.Errorf("cost/m2 = %v", stats.CostPerSqMeter)
	}

	noArea := ProjectStats(models.Project{Budget: 100}, expenses)
	if noArea.CostPerSqMeter != 0 {
		t.Errorf("zero sqMeters must not divide, got %v", noArea.CostPerSqMeter)
	}
}

func TestFilterByProject(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, ProjectID: 10},
		{ID: 2, ProjectID: 20},
		{ID: 3, ProjectID: 10},
	}

	got := FilterByProject(expenses, 10)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterByProject = %v", got)
	}
}
