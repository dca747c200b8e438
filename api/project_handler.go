package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	expenseRepo  *database.ExpenseRepo
	categoryRepo *database.CategoryRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, expenseRepo *database.ExpenseRepo, categoryRepo *database.CategoryRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total,omitempty"`
}

// parseID reads a chi URL parameter as an int64 row id
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + param)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + param)
	}
	return id, nil
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects from the database, newest first
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authentication handled by middleware

		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		collection := ProjectCollection{Total: len(projects)}
		for _, project := range projects {
			collection.Projects = append(collection.Projects, *project)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves detailed information about a specific project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project in the database
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var project models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if project.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}

		// A project always starts with a coherent stage label
		if title := models.CurrentStageTitle(project.CompletedStages); title != "" {
			project.CurrentStage = &title
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to an existing project
// @Summary Update project
// @Description Applies the provided fields to an existing project. Fields absent from the body are left untouched; fields present with a zero value are applied.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body models.ProjectPatch true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /project/{projectID} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists
		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var patch models.ProjectPatch
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		// Stage list changes drag the display label with them
		if patch.CompletedStages != nil && patch.CurrentStage == nil {
			title := models.CurrentStageTitle(*patch.CompletedStages)
			patch.CurrentStage = &title
		}

		if err := h.projectRepo.Update(projectID, patch); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project and all of its expenses and tasks
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists
		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

type toggleStageRequest struct {
	StageID int `json:"stageId"`
}

// toggleStage flips one construction stage between done and pending
// @Summary Toggle construction stage
// @Description Marks a stage done if pending or pending if done, and refreshes the project's current stage label
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param stage body toggleStageRequest true "Stage to toggle"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid stage id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/stages [put]
func (h projectHandler) toggleStage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req toggleStageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if !models.ValidStageID(req.StageID) {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid stage", "stageId", fmt.Sprintf("stage %d does not exist", req.StageID)))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		completed := models.ToggleStage(project.CompletedStages, req.StageID)
		title := models.CurrentStageTitle(completed)

		patch := models.ProjectPatch{
			CompletedStages: &completed,
			CurrentStage:    &title,
		}
		if err := h.projectRepo.Update(projectID, patch); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project stages", "project", err))
			return
		}

		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// exportExpensesCSV streams the project's expenses as a pt-BR friendly CSV
// @Summary Export expenses CSV
// @Description Exports all expenses of a project as a semicolon-separated CSV file
// @Tags Projects
// @Produce text/csv
// @Param projectID path int true "Project ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/expenses.csv [get]
func (h projectHandler) exportExpensesCSV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		categoryNames := make(map[int64]string, len(categories))
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("despesas-%s.csv", project.Name)))

		writer := csv.NewWriter(w)
		// Semicolon keeps the file openable in pt-BR spreadsheet locales
		writer.Comma = ';'

		header := []string{"Data", "Categoria", "Descrição", "Fornecedor", "Status", "Valor Previsto", "Valor Pago"}
		if err := writer.Write(header); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write CSV header")
			return
		}

		for _, e := range expenses {
			categoryName := categoryNames[e.CategoryID]
			if categoryName == "" {
				categoryName = "Outros"
			}
			record := []string{
				e.Date,
				categoryName,
				e.Description,
				e.Supplier,
				string(e.Status),
				formatDecimalBR(e.AmountExpected),
				formatDecimalBR(e.AmountPaid),
			}
			if err := writer.Write(record); err != nil {
				h.logger.Error().Err(err).Int64("expenseId", e.ID).Msg("Failed to write CSV record")
				return
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			h.logger.Error().Err(err).Msg("Failed to flush CSV")
		}
	}
}

// formatDecimalBR writes a money value with a comma decimal separator
func formatDecimalBR(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}
