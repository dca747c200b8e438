// Package analytics holds the pure aggregation logic of the app: spend
// totals and groupings, marketplace price ranking, distances and the
// shopping cart. Everything here works on already-loaded slices and does
// no I/O.
package analytics

import (
	"sort"

	"github.com/flavioricotta/Obracontrolia/models"
)

// FallbackSupplier labels expenses whose supplier field is blank.
const FallbackSupplier = "Outros"

// TotalSpent sums the paid amounts of a set of expenses.
func TotalSpent(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.AmountPaid
	}
	return total
}

// BudgetUtilization returns spent/budget as a percentage. A budget of zero
// (or below) yields 0 rather than dividing by zero.
func BudgetUtilization(budget float64, expenses []models.Expense) float64 {
	if budget <= 0 {
		return 0
	}
	return TotalSpent(expenses) / budget * 100
}

// DashboardStats is the per-project overview block.
type DashboardStats struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalSpent      float64 `json:"totalSpent"`
	RemainingBudget float64 `json:"remainingBudget"`
	PercentageUsed  float64 `json:"percentageUsed"`
	CostPerSqMeter  float64 `json:"costPerSqMeter"`
}

// ProjectStats computes the overview block for one project.
func ProjectStats(project models.Project, expenses []models.Expense) DashboardStats {
	spent := TotalSpent(expenses)
	stats := DashboardStats{
		TotalBudget:     project.Budget,
		TotalSpent:      spent,
		RemainingBudget: project.Budget - spent,
		PercentageUsed:  BudgetUtilization(project.Budget, expenses),
	}
	if project.SqMeters > 0 {
		stats.CostPerSqMeter = spent / project.SqMeters
	}
	return stats
}

// Bucket is one partition of a grouped spend view.
type Bucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SpendByCategory partitions expenses by category name and sums paid
// amounts. Zero-total partitions are dropped, matching the chart views;
// expenses pointing at an unknown category fall into FallbackSupplier.
// Buckets follow the seeded category order.
func SpendByCategory(expenses []models.Expense, categories []models.Category) []Bucket {
	totals := make(map[int64]float64, len(categories))
	var orphaned float64
	known := make(map[int64]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	for _, e := range expenses {
		if known[e.CategoryID] {
			totals[e.CategoryID] += e.AmountPaid
		} else {
			orphaned += e.AmountPaid
		}
	}

	var buckets []Bucket
	for _, c := range categories {
		if v := totals[c.ID]; v > 0 {
			buckets = append(buckets, Bucket{Name: c.Name, Value: v})
		}
	}
	if orphaned > 0 {
		buckets = append(buckets, Bucket{Name: FallbackSupplier, Value: orphaned})
	}
	return buckets
}

// SpendBySupplier partitions expenses by supplier string, blank suppliers
// grouped under FallbackSupplier, sorted by total descending. A limit of 0
// or less keeps every supplier.
func SpendBySupplier(expenses []models.Expense, limit int) []Bucket {
	totals := map[string]float64{}
	for _, e := range expenses {
		name := e.Supplier
		if name == "" {
			name = FallbackSupplier
		}
		totals[name] += e.AmountPaid
	}

	buckets := make([]Bucket, 0, len(totals))
	for name, v := range totals {
		buckets = append(buckets, Bucket{Name: name, Value: v})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Name < buckets[j].Name
	})

	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

// LaborSplit is the labor-vs-everything-else partition of spend.
type LaborSplit struct {
	Labor    float64 `json:"labor"`
	Material float64 `json:"material"`
}

// SplitLaborMaterial partitions paid amounts by whether the expense's
// category is labor-typed. The split always reflects the category types
// passed in, never anything cached on the expense.
func SplitLaborMaterial(expenses []models.Expense, categories []models.Category) LaborSplit {
	laborCategory := make(map[int64]bool, len(categories))
	for _, c := range categories {
		if c.Type == models.ExpenseTypeLabor {
			laborCategory[c.ID] = true
		}
	}

	var split LaborSplit
	for _, e := range expenses {
		if laborCategory[e.CategoryID] {
			split.Labor += e.AmountPaid
		} else {
			split.Material += e.AmountPaid
		}
	}
	return split
}

// FilterByProject keeps the expenses belonging to one project.
func FilterByProject(expenses []models.Expense, projectID int64) []models.Expense {
	var out []models.Expense
	for _, e := range expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out
}
