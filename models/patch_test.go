package models

import "testing"

func TestExpensePatchColumns(t *testing.T) {
	t.Run("omitted fields are not present", func(t *testing.T) {
		supplier := "Casa do Construtor"
		cols := ExpensePatch{Supplier: &supplier}.Columns()

		if len(cols) != 1 {
			t.Fatalf("expected 1 column, got %d: %v", len(cols), cols)
		}
		if cols["supplier"] != "Casa do Construtor" {
			t.Errorf("supplier = %v", cols["supplier"])
		}
	})

	t.Run("explicit zero values are applied", func(t *testing.T) {
		zero := 0.0
		empty := ""
		cols := ExpensePatch{AmountPaid: &zero, Description: &empty}.Columns()

		if v, ok := cols["amount_paid"]; !ok || v != 0.0 {
			t.Errorf("amount_paid = %v, ok = %v; a provided 0 must be applied", v, ok)
		}
		if v, ok := cols["description"]; !ok || v != "" {
			t.Errorf("description = %v, ok = %v; a provided empty string must be applied", v, ok)
		}
	})

	t.Run("empty patch carries nothing", func(t *testing.T) {
		if cols := (ExpensePatch{}).Columns(); len(cols) != 0 {
			t.Errorf("expected no columns, got %v", cols)
		}
	})
}

func TestProjectPatchColumns(t *testing.T) {
	stages := []int{1, 2, 3}
	label := "Fundação"
	patch := ProjectPatch{CompletedStages: &stages, CurrentStage: &label}

	cols := patch.Columns()
	if _, ok := cols["completed_stages"]; !ok {
		t.Error("completed_stages missing from patch columns")
	}
	if cols["current_stage"] != "Fundação" {
		t.Errorf("current_stage = %v", cols["current_stage"])
	}
}

func TestExpenseHasAmount(t *testing.T) {
	if (Expense{}).HasAmount() {
		t.Error("zero-amount expense must not be persistable")
	}
	if !(Expense{AmountPaid: 10}).HasAmount() {
		t.Error("paid amount should qualify")
	}
	if !(Expense{AmountExpected: 10}).HasAmount() {
		t.Error("expected amount should qualify")
	}
}
