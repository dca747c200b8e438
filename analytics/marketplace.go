package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/flavioricotta/Obracontrolia/models"
)

const earthRadiusKm = 6371

// Offer is one store's price for a product name, ranked against the
// cheapest offer for that name.
type Offer struct {
	Product       models.Product `json:"product"`
	IsBestPrice   bool           `json:"isBestPrice"`
	MarkupPercent float64        `json:"markupPercent"`
	DistanceKm    *float64       `json:"distanceKm,omitempty"`
}

// RankOffers ranks every product matching name (exact) ascending by price.
// The first offer is the best price with 0% markup; each other offer
// carries its percentage over the best price.
func RankOffers(products []models.Product, name string) []Offer {
	var matching []models.Product
	for _, p := range products {
		if p.Name == name {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Price < matching[j].Price
	})

	best := matching[0].Price
	offers := make([]Offer, len(matching))
	for i, p := range matching {
		offers[i] = Offer{Product: p, IsBestPrice: i == 0}
		if i > 0 && best > 0 {
			offers[i].MarkupPercent = (p.Price - best) / best * 100
		}
	}
	return offers
}

// UniqueByName collapses the catalog to one product per name, keeping the
// cheapest offer as the representative, sorted by name. This backs the
// marketplace search list.
func UniqueByName(products []models.Product) []models.Product {
	cheapest := map[string]models.Product{}
	for _, p := range products {
		if cur, ok := cheapest[p.Name]; !ok || p.Price < cur.Price {
			cheapest[p.Name] = p
		}
	}

	out := make([]models.Product, 0, len(cheapest))
	for _, p := range cheapest {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SearchByName filters products whose name contains term,
// case-insensitively. An empty term matches everything.
func SearchByName(products []models.Product, term string) []models.Product {
	if term == "" {
		return products
	}
	lower := strings.ToLower(term)
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			out = append(out, p)
		}
	}
	return out
}

// Haversine returns the great-circle distance in km between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Pow(math.Sin(dLon/2), 2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// StoreDistance computes the distance from a user position to a store.
// ok is false when either side has no location; the caller renders an
// unknown-distance marker, never zero.
func StoreDistance(userLat, userLng *float64, store models.Store) (km float64, ok bool) {
	if userLat == nil || userLng == nil || !store.HasLocation() {
		return 0, false
	}
	return Haversine(*userLat, *userLng, *store.Latitude, *store.Longitude), true
}
