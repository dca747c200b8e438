package api

import (
	"encoding/json"
	"net/http"

	"github.com/flavioricotta/Obracontrolia/analytics"
	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type checkoutHandler struct {
	responder   Responder
	logger      zerolog.Logger
	productRepo *database.ProductRepo
}

func newCheckoutHandler(productRepo *database.ProductRepo) checkoutHandler {
	logger := log.With().Str("handlerName", "checkoutHandler").Logger()

	return checkoutHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		productRepo: productRepo,
	}
}

type checkoutItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type checkoutRequest struct {
	Items []checkoutItem           `json:"items"`
	Payer services.PreferencePayer `json:"payer"`
}

// createPreference opens a Mercado Pago checkout for the cart
// @Summary Create checkout preference
// @Description Prices the cart server-side from the current catalog and opens a Mercado Pago checkout preference in BRL
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "Cart items and payer"
// @Success 200 {object} services.PreferenceResponse "Checkout preference"
// @Failure 400 {object} ErrorResponse "Bad Request - Empty cart or unknown product"
// @Router /checkout/preference [post]
func (h checkoutHandler) createPreference() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.Items) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("items must not be empty"))
			return
		}

		// Titles and unit prices come from the catalog, never the payload.
		// Repeated product ids collapse into a single cart line.
		cart := analytics.NewCart()
		for _, item := range req.Items {
			if item.Quantity <= 0 {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid item", "quantity", "quantity must be at least 1"))
				return
			}
			product, err := h.productRepo.FindByID(item.ProductID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find product", "product", err))
				return
			}
			cart.Add(*product)
			for i := 1; i < item.Quantity; i++ {
				cart.Increment(product.ID)
			}
		}

		lines := cart.Lines()
		preferenceItems := make([]services.PreferenceItem, 0, len(lines))
		for _, line := range lines {
			preferenceItems = append(preferenceItems, services.PreferenceItem{
				Title:      line.Product.Name,
				Quantity:   line.Quantity,
				CurrencyID: "BRL",
				UnitPrice:  line.Price,
			})
		}
		h.logger.Debug().Int("lines", cart.Len()).Float64("total", cart.Total()).Msg("Priced checkout cart")

		preference, err := services.CreateCheckoutPreference(preferenceItems, req.Payer)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to create checkout preference")
			h.responder.WriteError(w, errs.NewServiceUnavailableError("mercadopago", err))
			return
		}

		h.responder.WriteJSON(w, preference)
	}
}

// webhook receives Mercado Pago payment notifications
// @Summary Payment webhook
// @Description Receives Mercado Pago notifications, confirms payment status upstream and acknowledges
// @Tags Checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "Acknowledgement"
// @Router /checkout/webhook [post]
func (h checkoutHandler) webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		topic := query.Get("topic")
		if topic == "" {
			topic = query.Get("type")
		}
		paymentID := query.Get("id")
		if paymentID == "" {
			paymentID = query.Get("data.id")
		}

		if topic == "payment" && paymentID != "" {
			status, err := services.PaymentStatus(paymentID)
			if err != nil {
				// Acknowledge anyway so Mercado Pago stops retrying;
				// the status check failure is ours to investigate
				h.logger.Error().Err(err).Str("paymentId", paymentID).Msg("Failed to verify payment status")
			} else if status == "approved" {
				h.logger.Info().Str("paymentId", paymentID).Msg("Payment approved")
			} else {
				h.logger.Info().Str("paymentId", paymentID).Str("status", status).Msg("Payment notification received")
			}
		}

		h.responder.WriteJSON(w, map[string]bool{"received": true})
	}
}
