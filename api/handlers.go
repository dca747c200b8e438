package api

import (
	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, gemini *services.Gemini, storage *services.ReceiptStorage) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(database.ProjectRepo(), database.ExpenseRepo(), database.CategoryRepo()),
		expenseHandler:  newExpenseHandler(database.ExpenseRepo(), database.ProjectRepo(), database.CategoryRepo()),
		categoryHandler: newCategoryHandler(database.CategoryRepo()),
		taskHandler:     newTaskHandler(database.TaskRepo(), database.ProjectRepo()),
		productHandler:  newProductHandler(database.ProductRepo(), database.StoreRepo()),
		storeHandler:    newStoreHandler(database.StoreRepo()),
		quoteHandler:    newQuoteHandler(database.ProductRepo(), database.StoreRepo(), database.ProjectRepo()),
		reportHandler:   newReportHandler(database.ProjectRepo(), database.ExpenseRepo(), database.CategoryRepo(), database.ProductRepo()),
		aiHandler:       newAIHandler(gemini, storage, database.ProjectRepo(), database.ExpenseRepo(), database.CategoryRepo()),
		checkoutHandler: newCheckoutHandler(database.ProductRepo()),
	}
}
