package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/flavioricotta/Obracontrolia/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// receipt photos top out around a few MB; 10MB leaves headroom
const maxReceiptSize = 10 * 1024 * 1024

type aiHandler struct {
	responder    Responder
	logger       zerolog.Logger
	gemini       *services.Gemini
	storage      *services.ReceiptStorage
	projectRepo  *database.ProjectRepo
	expenseRepo  *database.ExpenseRepo
	categoryRepo *database.CategoryRepo
}

func newAIHandler(gemini *services.Gemini, storage *services.ReceiptStorage, projectRepo *database.ProjectRepo, expenseRepo *database.ExpenseRepo, categoryRepo *database.CategoryRepo) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		gemini:       gemini,
		storage:      storage,
		projectRepo:  projectRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ReceiptAnalysis is the receipt reading result plus the resolved category
// id and, when storage is configured, the uploaded image URL.
type ReceiptAnalysis struct {
	services.ReceiptData
	CategoryID int64  `json:"categoryId,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// analyzeReceipt reads a receipt photo into a prefilled expense
// @Summary Analyze receipt
// @Description Reads a receipt or invoice photo and extracts amount, date, supplier, description and category. The image is uploaded to storage in parallel with the analysis.
// @Tags AI
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Receipt image (JPEG, PNG or WebP)"
// @Success 200 {object} ReceiptAnalysis "Extracted receipt data"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or oversized image"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Model response unusable"
// @Router /ai/receipt [post]
func (h aiHandler) analyzeReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.gemini == nil {
			h.responder.WriteError(w, errs.NewEnvironmentVariableError("GEMINI_API_KEY"))
			return
		}

		if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("image exceeds the size limit or the form is malformed"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid request", "image", "an image file is required"))
			return
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read image"))
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}
		categoryValues := make([]models.Category, len(categories))
		for i, c := range categories {
			categoryValues[i] = *c
		}

		// Upload and analysis are independent; run them concurrently
		var (
			receipt  *services.ReceiptData
			imageURL string
		)
		group, ctx := errgroup.WithContext(r.Context())
		group.Go(func() error {
			var err error
			receipt, err = h.gemini.AnalyzeReceipt(ctx, image, mimeType, categoryValues)
			return err
		})
		if h.storage != nil {
			group.Go(func() error {
				var err error
				imageURL, err = h.storage.Upload(ctx, image, mimeType)
				return err
			})
		}
		if err := group.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		analysis := ReceiptAnalysis{ReceiptData: *receipt, ImageURL: imageURL}
		if id, ok := services.ResolveCategory(categoryValues, receipt.CategoryName); ok {
			analysis.CategoryID = id
		} else if category, err := h.categoryRepo.FindByName(receipt.CategoryName); err == nil {
			// Catches categories created after the list was fetched
			analysis.CategoryID = category.ID
		} else {
			h.logger.Warn().Str("categoryName", receipt.CategoryName).Msg("Model picked a category outside the seeded list")
		}

		h.responder.WriteJSON(w, analysis)
	}
}

type materialsRequest struct {
	Prompt string `json:"prompt"`
}

// MaterialCollection is the ordered material list the estimator produced.
type MaterialCollection struct {
	Items []services.MaterialItem `json:"items"`
	Total int                     `json:"total,omitempty"`
}

// estimateMaterials builds a material list from a job description
// @Summary Estimate materials
// @Description Turns a free-form job description into a complete technical material list with market prices
// @Tags AI
// @Accept json
// @Produce json
// @Param request body materialsRequest true "Job description"
// @Success 200 {object} MaterialCollection "Material list"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing prompt"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Model response unusable"
// @Router /ai/materials [post]
func (h aiHandler) estimateMaterials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.gemini == nil {
			h.responder.WriteError(w, errs.NewEnvironmentVariableError("GEMINI_API_KEY"))
			return
		}

		var req materialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Prompt == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid request", "prompt", "prompt is required"))
			return
		}

		items, err := h.gemini.EstimateMaterials(r.Context(), req.Prompt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, MaterialCollection{Items: items, Total: len(items)})
	}
}

// InsightsResponse carries the generated assessment text.
type InsightsResponse struct {
	Insights string `json:"insights"`
}

// getInsights generates a financial assessment of a project
// @Summary Get project insights
// @Description Generates a short Markdown assessment of the project's financial health from its budget and aggregated spend
// @Tags AI
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} InsightsResponse "Generated insights"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /ai/insights/{projectID} [post]
func (h aiHandler) getInsights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.gemini == nil {
			h.responder.WriteError(w, errs.NewEnvironmentVariableError("GEMINI_API_KEY"))
			return
		}

		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		expenses, err := h.expenseRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find expenses", "expenses", err))
			return
		}
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		expenseValues := make([]models.Expense, len(expenses))
		for i, e := range expenses {
			expenseValues[i] = *e
		}
		categoryValues := make([]models.Category, len(categories))
		for i, c := range categories {
			categoryValues[i] = *c
		}

		insights, err := h.gemini.GenerateInsights(r.Context(), *project, expenseValues, categoryValues)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, InsightsResponse{Insights: insights})
	}
}
