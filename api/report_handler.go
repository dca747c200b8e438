package api

import (
	"net/http"
	"strconv"

	"github.com/flavioricotta/Obracontrolia/analytics"
	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type reportHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	expenseRepo  *database.ExpenseRepo
	categoryRepo *database.CategoryRepo
	productRepo  *database.ProductRepo
}

func newReportHandler(projectRepo *database.ProjectRepo, expenseRepo *database.ExpenseRepo, categoryRepo *database.CategoryRepo, productRepo *database.ProductRepo) reportHandler {
	logger := log.With().Str("handlerName", "reportHandler").Logger()

	return reportHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// SummaryReport is the full dashboard payload for one project, assembled in
// a single request so the app paints the report screen with one round trip.
type SummaryReport struct {
	Project       models.Project            `json:"project"`
	Stats         analytics.DashboardStats  `json:"stats"`
	ByCategory    []analytics.Bucket        `json:"byCategory"`
	BySupplier    []analytics.Bucket        `json:"bySupplier"`
	LaborMaterial analytics.LaborSplit      `json:"laborMaterial"`
	Weekly        []analytics.WeekGroup     `json:"weekly"`
	StageProgress int                       `json:"stageProgress"`
	Suggestion    analytics.StageSuggestion `json:"suggestion"`
}

// getSummary builds the spend report for one project
// @Summary Get summary report
// @Description Builds the full dashboard for a project: totals, budget utilization, category and supplier breakdowns, labor/material split, weekly timeline and stage suggestions. Source data is fetched concurrently.
// @Tags Reports
// @Accept json
// @Produce json
// @Param project_id query int true "Project ID"
// @Success 200 {object} SummaryReport "Summary report"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing project_id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /reports/summary [get]
func (h reportHandler) getSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("project_id")
		if raw == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project_id"))
			return
		}
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid project_id"))
			return
		}

		var (
			project    *models.Project
			expenses   []*models.Expense
			categories []*models.Category
			products   []*models.Product
		)

		group, _ := errgroup.WithContext(r.Context())
		group.Go(func() error {
			var err error
			project, err = h.projectRepo.FindByID(projectID)
			return err
		})
		group.Go(func() error {
			var err error
			expenses, err = h.expenseRepo.FindByProject(projectID)
			return err
		})
		group.Go(func() error {
			var err error
			categories, err = h.categoryRepo.FindAll()
			return err
		})
		group.Go(func() error {
			var err error
			products, err = h.productRepo.FindAll()
			return err
		})
		if err := group.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("build summary", "report", err))
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
		productValues := make([]models.Product, len(products))
		for i, p := range products {
			productValues[i] = *p
		}

		stage := ""
		if project.CurrentStage != nil {
			stage = *project.CurrentStage
		}

		const supplierLimit = 5
		report := SummaryReport{
			Project:       *project,
			Stats:         analytics.ProjectStats(*project, expenseValues),
			ByCategory:    analytics.SpendByCategory(expenseValues, categoryValues),
			BySupplier:    analytics.SpendBySupplier(expenseValues, supplierLimit),
			LaborMaterial: analytics.SplitLaborMaterial(expenseValues, categoryValues),
			Weekly:        analytics.SpendByWeek(expenseValues),
			StageProgress: analytics.StageProgress(project.CompletedStages),
			Suggestion:    analytics.SuggestForStage(productValues, stage),
		}

		h.responder.WriteJSON(w, report)
	}
}
