package analytics

import (
	"math"
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
)

func TestRankOffers(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Cimento", Price: 30},
		{ID: 2, Name: "Cimento", Price: 28},
		{ID: 3, Name: "Cimento", Price: 35},
		{ID: 4, Name: "Areia", Price: 140},
	}

	offers := RankOffers(products, "Cimento")
	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(offers))
	}

	wantPrices := []float64{28, 30, 35}
	wantMarkups := []float64{0, (30.0 - 28.0) / 28.0 * 100, (35.0 - 28.0) / 28.0 * 100}
	for i, offer := range offers {
		if offer.Product.Price != wantPrices[i] {
			t.Errorf("offer %d price = %v, want %v", i, offer.Product.Price, wantPrices[i])
		}
		if math.Abs(offer.MarkupPercent-wantMarkups[i]) > 1e-9 {
			t.Errorf("offer %d markup = %v, want %v", i, offer.MarkupPercent, wantMarkups[i])
		}
	}
	if !offers[0].IsBestPrice {
		t.Error("first offer must be the best price")
	}
	if offers[0].MarkupPercent != 0 {
		t.Errorf("best price markup = %v, want exactly 0", offers[0].MarkupPercent)
	}
	// 7.14% rounded, per the price-comparison screen
	if got := math.Round(offers[1].MarkupPercent*100) / 100; got != 7.14 {
		t.Errorf("second markup rounds to %v, want 7.14", got)
	}
}

func TestRankOffersEdges(t *testing.T) {
	if offers := RankOffers(nil, "Cimento"); offers != nil {
		t.Errorf("no products should rank to nil, got %v", offers)
	}

	single := RankOffers([]models.Product{{ID: 1, Name: "Cal", Price: 12}}, "Cal")
	if len(single) != 1 || !single[0].IsBestPrice || single[0].MarkupPercent != 0 {
		t.Errorf("single offer = %+v", single)
	}

	// names match exactly, not by substring or case folding
	if offers := RankOffers([]models.Product{{Name: "cimento", Price: 10}}, "Cimento"); offers != nil {
		t.Errorf("case-insensitive match must not rank, got %v", offers)
	}
}

func TestUniqueByName(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Cimento", Price: 32},
		{ID: 2, Name: "Cimento", Price: 28},
		{ID: 3, Name: "Areia", Price: 140},
	}

	unique := UniqueByName(products)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique names, got %v", unique)
	}
	if unique[0].Name != "Areia" {
		t.Errorf("expected sorted by name, got %v", unique)
	}
	if unique[1].Price != 28 {
		t.Errorf("representative must be the cheapest offer, got %v", unique[1].Price)
	}
}

func TestSearchByName(t *testing.T) {
	products := []models.Product{
		{Name: "Cimento CP II"},
		{Name: "Areia Média"},
	}

	if got := SearchByName(products, "cimento"); len(got) != 1 {
		t.Errorf("search is case-insensitive, got %v", got)
	}
	if got := SearchByName(products, ""); len(got) != 2 {
		t.Errorf("empty term matches everything, got %v", got)
	}
	if got := SearchByName(products, "tijolo"); got != nil {
		t.Errorf("no match should be empty, got %v", got)
	}
}

func TestHaversine(t *testing.T) {
	// São Paulo and Rio de Janeiro, roughly 360 km apart
	spLat, spLng := -23.5505, -46.6333
	rjLat, rjLng := -22.9068, -43.1729

	d := Haversine(spLat, spLng, rjLat, rjLng)
	if d < 350 || d > 370 {
		t.Errorf("SP-RJ distance = %v km, expected ~360", d)
	}

	t.Run("symmetric", func(t *testing.T) {
		back := Haversine(rjLat, rjLng, spLat, spLng)
		if math.Abs(d-back) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", d, back)
		}
	})

	t.Run("zero at same point", func(t *testing.T) {
		if same := Haversine(spLat, spLng, spLat, spLng); math.Abs(same) > 1e-9 {
			t.Errorf("distance(A,A) = %v, want 0", same)
		}
	})
}

func TestStoreDistance(t *testing.T) {
	lat, lng := -23.5505, -46.6333
	located := models.Store{Latitude: &lat, Longitude: &lng}

	t.Run("both sides located", func(t *testing.T) {
		km, ok := StoreDistance(&lat, &lng, located)
		if !ok || math.Abs(km) > 1e-9 {
			t.Errorf("got %v ok=%v, want 0 true", km, ok)
		}
	})

	t.Run("missing user location", func(t *testing.T) {
		if _, ok := StoreDistance(nil, nil, located); ok {
			t.Error("missing user location must be unknown, not zero")
		}
	})

	t.Run("missing store location", func(t *testing.T) {
		if _, ok := StoreDistance(&lat, &lng, models.Store{}); ok {
			t.Error("missing store location must be unknown, not zero")
		}
	})
}
