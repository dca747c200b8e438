package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthHandler(startupTime))
		r.Post("/checkout/webhook", handlers.checkoutHandler.webhook())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Patch("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/project/{projectID}/stages", handlers.projectHandler.toggleStage())
		r.Get("/project/{projectID}/expenses.csv", handlers.projectHandler.exportExpensesCSV())

		// Expense Handler endpoints
		r.Get("/expenses", handlers.expenseHandler.getExpenses())
		r.Get("/expense/{expenseID}", handlers.expenseHandler.getExpense())
		r.Post("/expense", handlers.expenseHandler.createExpense())
		r.Patch("/expense/{expenseID}", handlers.expenseHandler.updateExpense())
		r.Delete("/expense/{expenseID}", handlers.expenseHandler.deleteExpense())

		// Category Handler endpoints
		r.Get("/categories", handlers.categoryHandler.getAllCategories())

		// Task Handler endpoints
		r.Get("/tasks", handlers.taskHandler.getTasks())
		r.Post("/task", handlers.taskHandler.createTask())
		r.Post("/tasks/bulk", handlers.taskHandler.createTasksBulk())
		r.Put("/task/{taskID}/toggle", handlers.taskHandler.toggleTask())
		r.Delete("/task/{taskID}", handlers.taskHandler.deleteTask())

		// Product Handler endpoints (marketplace catalog)
		r.Get("/products", handlers.productHandler.getAllProducts())

		// Store Handler endpoints
		r.Get("/stores", handlers.storeHandler.getActiveStores())
		r.Get("/store/{userID}", handlers.storeHandler.getStore())

		// Quote Handler endpoints (price comparison)
		r.Get("/quotes", handlers.quoteHandler.searchProducts())
		r.Get("/quotes/offers", handlers.quoteHandler.getOffers())

		// Purchase suggestions by construction stage
		r.Get("/suggestions", handlers.quoteHandler.getSuggestions())

		// Report Handler endpoints
		r.Get("/reports/summary", handlers.reportHandler.getSummary())

		// AI Handler endpoints
		r.Post("/ai/receipt", handlers.aiHandler.analyzeReceipt())
		r.Post("/ai/materials", handlers.aiHandler.estimateMaterials())
		r.Post("/ai/insights/{projectID}", handlers.aiHandler.getInsights())

		// Checkout Handler endpoints
		r.Post("/checkout/preference", handlers.checkoutHandler.createPreference())
	})

	// Business-only routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireBusiness)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/products/mine", handlers.productHandler.getMyProducts())
		r.Post("/product", handlers.productHandler.createProduct())
		r.Patch("/product/{productID}", handlers.productHandler.updateProduct())
		r.Delete("/product/{productID}", handlers.productHandler.deleteProduct())

		r.Get("/store/mine", handlers.storeHandler.getMyStore())
		r.Put("/store", handlers.storeHandler.upsertStore())
	})
}

// healthHandler reports liveness and uptime
func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthHandler").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
