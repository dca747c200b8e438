package analytics

import (
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func TestCartAddTwiceAccumulates(t *testing.T) {
	cart := NewCart()
	cimento := models.Product{ID: 1, Name: "Cimento", Price: 30}

	cart.Add(cimento)
	cart.Add(cimento)

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", lines[0].Quantity)
	}
	if lines[0].Price != 30 {
		t.Errorf("unit price = %v, want unchanged 30", lines[0].Price)
	}
	if cart.Total() != 60 {
		t.Errorf("total = %v, want 60", cart.Total())
	}
}

func TestCartPriceSnapshot(t *testing.T) {
	cart := NewCart()
	cart.Add(models.Product{ID: 1, Name: "Cimento", Price: 30})

	// a later catalog price edit does not move the line already in the cart
	cart.Increment(1)
	cart.Add(models.Product{ID: 1, Name: "Cimento", Price: 99})

	lines := cart.Lines()
	if lines[0].Price != 30 || lines[0].Quantity != 3 {
		t.Errorf("line = %+v, want price 30 qty 3", lines[0])
	}
}

func TestCartDecrementFloorsAtOne(t *testing.T) {
	cart := NewCart()
	cart.Add(models.Product{ID: 1, Price: 10})

	cart.Decrement(1)
	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("decrementing a quantity-1 line must be a no-op, got %d", got)
	}

	cart.Increment(1)
	cart.Decrement(1)
	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want back to 1", got)
	}
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	cart.Add(models.Product{ID: 1, Price: 10})
	cart.Add(models.Product{ID: 2, Price: 25})

	cart.Remove(1)

	if cart.Len() != 1 {
		t.Fatalf("expected 1 line after remove, got %d", cart.Len())
	}
	if cart.Total() != 25 {
		t.Errorf("total = %v, removed line must not count", cart.Total())
	}

	// removing an absent id is harmless
	cart.Remove(42)
	if cart.Len() != 1 {
		t.Errorf("removing unknown id changed the cart")
	}
}
