package analytics

import (
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func TestSpendByWeek(t *testing.T) {
	// 2024-03-06 is a Wednesday; its week runs Sunday 03/03 to Saturday 09/03
	expenses := []models.Expense{
		{ID: 1, Date: "2024-03-06", AmountPaid: 100},
		{ID: 2, Date: "2024-03-08", AmountPaid: 50},
		{ID: 3, Date: "2024-03-12", AmountPaid: 70},
	}

	groups := SpendByWeek(expenses)
	if len(groups) != 2 {
		t.Fatalf("expected 2 weeks, got %v", groups)
	}

	// newest week first
	if groups[0].Start != "2024-03-10" || groups[0].Total != 70 {
		t.Errorf("newest week = %+v", groups[0])
	}
	if groups[1].Start != "2024-03-03" || groups[1].End != "2024-03-09" {
		t.Errorf("older week bounds = %+v", groups[1])
	}
	if groups[1].Total != 150 || len(groups[1].Expenses) != 2 {
		t.Errorf("older week = %+v", groups[1])
	}
	if groups[1].Label != "03/03 a 09/03" {
		t.Errorf("label = %q, want 03/03 a 09/03", groups[1].Label)
	}
}

func TestSpendByWeekSundayBoundary(t *testing.T) {
	// a Sunday starts its own week
	groups := SpendByWeek([]models.Expense{{Date: "2024-03-10", AmountPaid: 10}})
	if len(groups) != 1 || groups[0].Start != "2024-03-10" {
		t.Errorf("sunday expense week = %+v", groups)
	}
}

func TestSpendByWeekSkipsBadDates(t *testing.T) {
	groups := SpendByWeek([]models.Expense{
		{Date: "not-a-date", AmountPaid: 10},
		{Date: "2024-03-06", AmountPaid: 5},
	})
	if len(groups) != 1 || groups[0].Total != 5 {
		t.Errorf("groups = %+v", groups)
	}
}
