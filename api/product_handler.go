package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type productHandler struct {
	responder   Responder
	logger      zerolog.Logger
	productRepo *database.ProductRepo
	storeRepo   *database.StoreRepo
}

func newProductHandler(productRepo *database.ProductRepo, storeRepo *database.StoreRepo) productHandler {
	logger := log.With().Str("handlerName", "productHandler").Logger()

	return productHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// ProductCollection represents multiple products
type ProductCollection struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total,omitempty"`
}

// getAllProducts lists the whole marketplace catalog
// @Summary Get all products
// @Description Retrieves every product currently published in the marketplace
// @Tags Products
// @Accept json
// @Produce json
// @Success 200 {object} ProductCollection "List of products"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching products"
// @Router /products [get]
func (h productHandler) getAllProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.productRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}

		collection := ProductCollection{Total: len(products)}
		for _, product := range products {
			collection.Products = append(collection.Products, *product)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// getMyProducts lists the caller's own catalog
// @Summary Get my products
// @Description Retrieves the products published by the authenticated store owner
// @Tags Products
// @Accept json
// @Produce json
// @Success 200 {object} ProductCollection "List of products"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /products/mine [get]
func (h productHandler) getMyProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		products, err := h.productRepo.FindByStore(session.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find products", "products", err))
			return
		}

		collection := ProductCollection{Total: len(products)}
		for _, product := range products {
			collection.Products = append(collection.Products, *product)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// createProduct publishes a new product under the caller's store
// @Summary Create product
// @Description Creates a new product owned by the authenticated store. The store id is taken from the session, never from the payload.
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product data"
// @Success 201 {object} models.Product "Created product"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid product data"
// @Router /product [post]
func (h productHandler) createProduct() http.HandlerFunc {
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

		var product models.Product
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&product); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode product request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if product.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}
		if product.Price < 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid product", "price", "price must not be negative"))
			return
		}
		if product.Unit == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("unit is required"))
			return
		}

		// Ownership comes from the session, whatever the payload claims
		product.StoreID = session.UserID
		product.LastUpdated = time.Now()

		if err := h.productRepo.Add(&product); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create product", "product", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, product)
	}
}

// updateProduct applies a partial update to one of the caller's products
// @Summary Update product
// @Description Applies the provided fields to a product the caller owns. Mostly used for price quick-edits.
// @Tags Products
// @Accept json
// @Produce json
// @Param productID path int true "Product ID"
// @Param product body models.ProductPatch true "Fields to update"
// @Success 200 {object} models.Product "Updated product"
// @Failure 403 {object} ErrorResponse "Forbidden - Product belongs to another store"
// @Failure 404 {object} ErrorResponse "Not Found - Product not found"
// @Router /product/{productID} [patch]
func (h productHandler) updateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		productID, err := parseID(r, "productID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		product, err := h.productRepo.FindByID(productID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}
		if product.StoreID != session.UserID {
			h.responder.WriteError(w, errs.NewForbiddenError("product belongs to another store"))
			return
		}

		var patch models.ProductPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if patch.Price != nil && *patch.Price < 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid product", "price", "price must not be negative"))
			return
		}

		if err := h.productRepo.Update(productID, patch); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update product", "product", err))
			return
		}

		updatedProduct, err := h.productRepo.FindByID(productID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated product", "product", err))
			return
		}

		h.responder.WriteJSON(w, updatedProduct)
	}
}

// deleteProduct removes one of the caller's products
// @Summary Delete product
// @Description Deletes a product the caller owns
// @Tags Products
// @Accept json
// @Produce json
// @Param productID path int true "Product ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Forbidden - Product belongs to another store"
// @Failure 404 {object} ErrorResponse "Not Found - Product not found"
// @Router /product/{productID} [delete]
func (h productHandler) deleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		productID, err := parseID(r, "productID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		product, err := h.productRepo.FindByID(productID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
			return
		}
		if product.StoreID != session.UserID {
			h.responder.WriteError(w, errs.NewForbiddenError("product belongs to another store"))
			return
		}

		if err := h.productRepo.Delete(productID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete product", "product", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "product deleted successfully",
		})
	}
}
