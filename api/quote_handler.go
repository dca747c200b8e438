package api

import (
	"net/http"
	"strconv"

	"github.com/flavioricotta/Obracontrolia/analytics"
	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type quoteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	productRepo *database.ProductRepo
	storeRepo   *database.StoreRepo
	projectRepo *database.ProjectRepo
}

func newQuoteHandler(productRepo *database.ProductRepo, storeRepo *database.StoreRepo, projectRepo *database.ProjectRepo) quoteHandler {
	logger := log.With().Str("handlerName", "quoteHandler").Logger()

	return quoteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		projectRepo: projectRepo,
	}
}

// QuoteCollection is the deduplicated search list, one entry per product
// name with the cheapest offer as representative.
type QuoteCollection struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total,omitempty"`
}

// OfferCollection is every store's offer for one product name, best price first.
type OfferCollection struct {
	Name   string            `json:"name"`
	Offers []analytics.Offer `json:"offers"`
	Total  int               `json:"total,omitempty"`
}

// searchProducts searches the marketplace by name, one result per product name
// @Summary Search quotes
// @Description Searches the catalog case-insensitively by name, collapsing duplicates to the cheapest offer
// @Tags Quotes
// @Accept json
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} QuoteCollection "Matching products"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching products"
// @Router /quotes [get]
func (h quoteHandler) searchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.productRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}

		catalog := make([]models.Product, len(products))
		for i, p := range products {
			catalog[i] = *p
		}

		matches := analytics.SearchByName(catalog, r.URL.Query().Get("q"))
		unique := analytics.UniqueByName(matches)

		h.responder.WriteJSON(w, QuoteCollection{Products: unique, Total: len(unique)})
	}
}

// getOffers ranks every store's price for one product name
// @Summary Get offers
// @Description Ranks all offers for an exact product name ascending by price, with percentage markup over the best offer. When lat and lng are provided, each offer carries the distance to its store.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param name query string true "Exact product name"
// @Param lat query number false "User latitude"
// @Param lng query number false "User longitude"
// @Success 200 {object} OfferCollection "Ranked offers"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing name"
// @Router /quotes/offers [get]
func (h quoteHandler) getOffers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing name"))
			return
		}

		userLat := parseCoordinate(r.URL.Query().Get("lat"))
		userLng := parseCoordinate(r.URL.Query().Get("lng"))

		products, err := h.productRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}
		catalog := make([]models.Product, len(products))
		for i, p := range products {
			catalog[i] = *p
		}

		offers := analytics.RankOffers(catalog, name)

		if userLat != nil && userLng != nil && len(offers) > 0 {
			stores, err := h.storeRepo.FindActive()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find stores", "stores", err))
				return
			}
			storesByOwner := make(map[uuid.UUID]*models.Store, len(stores))
			for _, s := range stores {
				storesByOwner[s.UserID] = s
			}

			for i := range offers {
				store, ok := storesByOwner[offers[i].Product.StoreID]
				if !ok {
					continue
				}
				if km, ok := analytics.StoreDistance(userLat, userLng, *store); ok {
					offers[i].DistanceKm = &km
				}
			}
		}

		h.responder.WriteJSON(w, OfferCollection{Name: name, Offers: offers, Total: len(offers)})
	}
}

// SuggestionResponse pairs the stage suggestion with overall progress.
type SuggestionResponse struct {
	analytics.StageSuggestion
	Progress int `json:"progress"`
}

// getSuggestions suggests purchases for a project's current stage
// @Summary Get purchase suggestions
// @Description Suggests marketplace products matching the project's current construction stage, with the completed-stage percentage
// @Tags Quotes
// @Accept json
// @Produce json
// @Param project_id query int true "Project ID"
// @Success 200 {object} SuggestionResponse "Stage suggestion"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing project_id"
// @Router /suggestions [get]
func (h quoteHandler) getSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("project_id")
		if raw == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project_id"))
			return
		}
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid project_id"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		products, err := h.productRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}
		catalog := make([]models.Product, len(products))
		for i, p := range products {
			catalog[i] = *p
		}

		stage := ""
		if project.CurrentStage != nil {
			stage = *project.CurrentStage
		}

		response := SuggestionResponse{
			StageSuggestion: analytics.SuggestForStage(catalog, stage),
			Progress:        analytics.StageProgress(project.CompletedStages),
		}

		h.responder.WriteJSON(w, response)
	}
}

// parseCoordinate parses a lat/lng query value, nil when absent or invalid
func parseCoordinate(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
