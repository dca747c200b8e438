package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	expenseHandler  expenseHandler
	categoryHandler categoryHandler
	taskHandler     taskHandler
	productHandler  productHandler
	storeHandler    storeHandler
	quoteHandler    quoteHandler
	reportHandler   reportHandler
	aiHandler       aiHandler
	checkoutHandler checkoutHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
