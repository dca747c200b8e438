package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type storeHandler struct {
	responder Responder
	logger    zerolog.Logger
	storeRepo *database.StoreRepo
}

func newStoreHandler(storeRepo *database.StoreRepo) storeHandler {
	logger := log.With().Str("handlerName", "storeHandler").Logger()

	return storeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storeRepo: storeRepo,
	}
}

// StoreCollection represents multiple stores
type StoreCollection struct {
	Stores []models.Store `json:"stores"`
	Total  int            `json:"total,omitempty"`
}

// getActiveStores lists every store visible in the marketplace
// @Summary Get active stores
// @Description Retrieves all stores currently visible in the marketplace
// @Tags Stores
// @Accept json
// @Produce json
// @Success 200 {object} StoreCollection "List of stores"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching stores"
// @Router /stores [get]
func (h storeHandler) getActiveStores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := h.storeRepo.FindActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find stores", "stores", err))
			return
		}

		collection := StoreCollection{Total: len(stores)}
		for _, store := range stores {
			collection.Stores = append(collection.Stores, *store)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// getStore retrieves a store by the owning account id
// @Summary Get store
// @Description Retrieves a store profile by the owning account's id
// @Tags Stores
// @Accept json
// @Produce json
// @Param userID path string true "Store owner account ID" format(uuid)
// @Success 200 {object} models.Store "Store profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid userID"
// @Failure 404 {object} ErrorResponse "Not Found - Store not found"
// @Router /store/{userID} [get]
func (h storeHandler) getStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := chi.URLParam(r, "userID")
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		store, err := h.storeRepo.FindByUserID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find store", "store", err))
			return
		}

		h.responder.WriteJSON(w, store)
	}
}

// getMyStore retrieves the caller's own store profile
// @Summary Get my store
// @Description Retrieves the authenticated store owner's profile
// @Tags Stores
// @Accept json
// @Produce json
// @Success 200 {object} models.Store "Store profile"
// @Failure 404 {object} ErrorResponse "Not Found - No store profile yet"
// @Router /store/mine [get]
func (h storeHandler) getMyStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		store, err := h.storeRepo.FindByUserID(session.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find store", "store", err))
			return
		}

		h.responder.WriteJSON(w, store)
	}
}

// upsertStore creates or replaces the caller's store profile
// @Summary Upsert store
// @Description Creates the authenticated account's store profile, or updates it in place if one exists. One profile per account.
// @Tags Stores
// @Accept json
// @Produce json
// @Param store body models.Store true "Store profile"
// @Success 200 {object} models.Store "Saved store profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing required fields"
// @Router /store [put]
func (h storeHandler) upsertStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var store models.Store
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&store); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode store request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if missing := store.Validate(); len(missing) > 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid store", missing[0], "required fields missing: "+strings.Join(missing, ", ")))
			return
		}

		// The profile always belongs to the session account
		store.UserID = session.UserID

		if err := h.storeRepo.Upsert(&store); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save store", "store", err))
			return
		}

		savedStore, err := h.storeRepo.FindByUserID(session.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find saved store", "store", err))
			return
		}

		h.responder.WriteJSON(w, savedStore)
	}
}
