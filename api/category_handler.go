package api

import (
	"net/http"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

// CategoryCollection represents the seeded category list
type CategoryCollection struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total,omitempty"`
}

// getAllCategories lists the seeded expense categories
// @Summary Get all categories
// @Description Retrieves the fixed construction expense categories in seed order
// @Tags Categories
// @Accept json
// @Produce json
// @Success 200 {object} CategoryCollection "List of categories"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching categories"
// @Router /categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		collection := CategoryCollection{Total: len(categories)}
		for _, category := range categories {
			collection.Categories = append(collection.Categories, *category)
		}

		h.responder.WriteJSON(w, collection)
	}
}
