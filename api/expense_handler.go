package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// expenseStore is the slice of ExpenseRepo this handler uses.
type expenseStore interface {
	FindAll() ([]*models.Expense, error)
	FindByProject(projectID int64) ([]*models.Expense, error)
	FindByID(id int64) (*models.Expense, error)
	Add(expense *models.Expense) error
	Update(id int64, patch models.ExpensePatch) error
	Delete(id int64) error
}

type projectFinder interface {
	FindByID(id int64) (*models.Project, error)
}

type categoryFinder interface {
	FindByID(id int64) (*models.Category, error)
}

type expenseHandler struct {
	responder    Responder
	logger       zerolog.Logger
	expenseRepo  expenseStore
	projectRepo  projectFinder
	categoryRepo categoryFinder
}

func newExpenseHandler(expenseRepo expenseStore, projectRepo projectFinder, categoryRepo categoryFinder) expenseHandler {
	logger := log.With().Str("handlerName", "expenseHandler").Logger()

	return expenseHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		expenseRepo:  expenseRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
	}
}

// ExpenseCollection represents multiple expenses
type ExpenseCollection struct {
	Expenses []models.Expense `json:"expenses"`
	Total    int              `json:"total,omitempty"`
}

// getExpenses lists expenses, optionally scoped to one project
// @Summary Get expenses
// @Description Retrieves expenses, newest purchase first. Pass project_id to scope to one project.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param project_id query int false "Project ID"
// @Success 200 {object} ExpenseCollection "List of expenses"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching expenses"
// @Router /expenses [get]
func (h expenseHandler) getExpenses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			expenses []*models.Expense
			err      error
		)

		if raw := r.URL.Query().Get("project_id"); raw != "" {
			projectID, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid project_id"))
				return
			}
			expenses, err = h.expenseRepo.FindByProject(projectID)
		} else {
			expenses, err = h.expenseRepo.FindAll()
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find expenses", "expenses", err))
			return
		}

		collection := ExpenseCollection{Total: len(expenses)}
		for _, expense := range expenses {
			collection.Expenses = append(collection.Expenses, *expense)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// getExpense retrieves a specific expense by ID
// @Summary Get expense
// @Description Retrieves one expense by ID
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expenseID path int true "Expense ID"
// @Success 200 {object} models.Expense "Expense details"
// @Failure 404 {object} ErrorResponse "Not Found - Expense not found"
// @Router /expense/{expenseID} [get]
func (h expenseHandler) getExpense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenseID, err := parseID(r, "expenseID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		expense, err := h.expenseRepo.FindByID(expenseID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find expense", "expense", err))
			return
		}

		h.responder.WriteJSON(w, expense)
	}
}

// createExpense creates a new expense
// @Summary Create expense
// @Description Creates a new expense under a project. Rejects entries with neither a paid nor an expected amount.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense body models.Expense true "Expense data"
// @Success 201 {object} models.Expense "Created expense"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid expense data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating expense"
// @Router /expense [post]
func (h expenseHandler) createExpense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var expense models.Expense
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&expense); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode expense request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if expense.ProjectID == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid expense", "projectId", "projectId is required"))
			return
		}
		if expense.CategoryID == 0 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid expense", "categoryId", "categoryId is required"))
			return
		}
		if expense.Date == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid expense", "date", "date is required"))
			return
		}
		if !expense.HasAmount() {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid expense", "amountPaid", "either amountPaid or amountExpected must be greater than zero"))
			return
		}

		// The owning project and category must exist before we attach spend
		// to them; an unknown category id would misfile the spend in reports
		if _, err := h.projectRepo.FindByID(expense.ProjectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if _, err := h.categoryRepo.FindByID(expense.CategoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}

		if expense.Status == "" {
			expense.Status = models.PaymentStatusPaid
		}

		if err := h.expenseRepo.Add(&expense); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create expense", "expense", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, expense)
	}
}

// updateExpense applies a partial update to an existing expense
// @Summary Update expense
// @Description Applies the provided fields to an existing expense. Fields absent from the body are left untouched.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expenseID path int true "Expense ID"
// @Param expense body models.ExpensePatch true "Fields to update"
// @Success 200 {object} models.Expense "Updated expense"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid expense data"
// @Failure 404 {object} ErrorResponse "Not Found - Expense not found"
// @Router /expense/{expenseID} [patch]
func (h expenseHandler) updateExpense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenseID, err := parseID(r, "expenseID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify expense exists
		if _, err := h.expenseRepo.FindByID(expenseID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find expense", "expense", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var patch models.ExpensePatch
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode expense patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if patch.CategoryID != nil {
			if _, err := h.categoryRepo.FindByID(*patch.CategoryID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
				return
			}
		}

		if err := h.expenseRepo.Update(expenseID, patch); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update expense", "expense", err))
			return
		}

		updatedExpense, err := h.expenseRepo.FindByID(expenseID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated expense", "expense", err))
			return
		}

		h.responder.WriteJSON(w, updatedExpense)
	}
}

// deleteExpense deletes an expense by ID
// @Summary Delete expense
// @Description Deletes an expense from the database by ID
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expenseID path int true "Expense ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Expense not found"
// @Router /expense/{expenseID} [delete]
func (h expenseHandler) deleteExpense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenseID, err := parseID(r, "expenseID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify expense exists
		if _, err := h.expenseRepo.FindByID(expenseID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find expense", "expense", err))
			return
		}

		if err := h.expenseRepo.Delete(expenseID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete expense", "expense", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "expense deleted successfully",
		})
	}
}
