package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/flavioricotta/Obracontrolia/config"
	"github.com/rs/zerolog/log"
)

const mercadoPagoBaseURL = "https://api.mercadopago.com"

// PreferenceItem is one purchasable line in a checkout preference.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
}

// PreferencePayer identifies the buyer on the Mercado Pago side.
type PreferencePayer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type preferenceRequest struct {
	Items      []PreferenceItem  `json:"items"`
	Payer      PreferencePayer   `json:"payer"`
	BackURLs   map[string]string `json:"back_urls"`
	AutoReturn string            `json:"auto_return"`
}

// PreferenceResponse is the subset of the checkout preference we hand back
// to the app: the id plus the URLs that open the payment flow.
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type mercadoPagoError struct {
	Message string `json:"message"`
}

// CreateCheckoutPreference opens a Mercado Pago checkout for the given cart
// items. All prices are charged in BRL.
//
// Requires environment variables in .env:
//   - MP_ACCESS_TOKEN: the Mercado Pago access token
//
// Optional environment variables:
//   - MP_BACK_URL_BASE: site the buyer returns to after paying
func CreateCheckoutPreference(items []PreferenceItem, payer PreferencePayer) (*PreferenceResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	cfg := config.New()

	accessToken := config.GetString(cfg, "MP_ACCESS_TOKEN", "")
	if accessToken == "" {
		return nil, fmt.Errorf("MP_ACCESS_TOKEN environment variable is required in .env file")
	}

	backURLBase := config.GetString(cfg, "MP_BACK_URL_BASE", "https://obracontrol.com.br")

	for i := range items {
		if items[i].CurrencyID == "" {
			items[i].CurrencyID = "BRL"
		}
	}

	payload := preferenceRequest{
		Items: items,
		Payer: payer,
		BackURLs: map[string]string{
			"success": backURLBase + "/success",
			"failure": backURLBase + "/failure",
			"pending": backURLBase + "/pending",
		},
		AutoReturn: "approved",
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference payload: %w", err)
	}

	req, err := http.NewRequest("POST", mercadoPagoBaseURL+"/checkout/preferences", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create Mercado Pago request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Mercado Pago: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Mercado Pago response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorResp mercadoPagoError
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return nil, fmt.Errorf("mercado pago error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return nil, fmt.Errorf("mercado pago error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var preference PreferenceResponse
	if err := json.Unmarshal(bodyBytes, &preference); err != nil {
		return nil, fmt.Errorf("failed to parse Mercado Pago response: %w", err)
	}

	log.Info().Str("preferenceId", preference.ID).Msg("Created Mercado Pago checkout preference")
	return &preference, nil
}

// PaymentStatus fetches the current status of a payment, used by the
// webhook to confirm an approval before acting on it.
func PaymentStatus(paymentID string) (string, error) {
	cfg := config.New()

	accessToken := config.GetString(cfg, "MP_ACCESS_TOKEN", "")
	if accessToken == "" {
		return "", fmt.Errorf("MP_ACCESS_TOKEN environment variable is required in .env file")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/payments/%s", mercadoPagoBaseURL, paymentID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create payment status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch payment status: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read payment status response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mercado pago error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var payment struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(bodyBytes, &payment); err != nil {
		return "", fmt.Errorf("failed to parse payment status response: %w", err)
	}

	return payment.Status, nil
}
