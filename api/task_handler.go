package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/flavioricotta/Obracontrolia/database"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taskHandler struct {
	responder   Responder
	logger      zerolog.Logger
	taskRepo    *database.TaskRepo
	projectRepo *database.ProjectRepo
}

func newTaskHandler(taskRepo *database.TaskRepo, projectRepo *database.ProjectRepo) taskHandler {
	logger := log.With().Str("handlerName", "taskHandler").Logger()

	return taskHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// TaskCollection represents multiple tasks
type TaskCollection struct {
	Tasks []models.Task `json:"tasks"`
	Total int           `json:"total,omitempty"`
}

// getTasks lists the tasks of one project
// @Summary Get tasks
// @Description Retrieves the checklist of a project, newest first
// @Tags Tasks
// @Accept json
// @Produce json
// @Param project_id query int true "Project ID"
// @Success 200 {object} TaskCollection "List of tasks"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing project_id"
// @Router /tasks [get]
func (h taskHandler) getTasks() http.HandlerFunc {
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

		tasks, err := h.taskRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tasks", "tasks", err))
			return
		}

		collection := TaskCollection{Total: len(tasks)}
		for _, task := range tasks {
			collection.Tasks = append(collection.Tasks, *task)
		}

		h.responder.WriteJSON(w, collection)
	}
}

// createTask creates a new task
// @Summary Create task
// @Description Creates a single checklist item under a project
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body models.Task true "Task data"
// @Success 201 {object} models.Task "Created task"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid task data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /task [post]
func (h taskHandler) createTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var task models.Task
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&task); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode task request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if task.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}
		if task.ProjectID == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("projectId is required"))
			return
		}

		if _, err := h.projectRepo.FindByID(task.ProjectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.taskRepo.Add(&task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create task", "task", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, task)
	}
}

type bulkTaskItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type bulkTaskRequest struct {
	ProjectID int64          `json:"projectId"`
	Items     []bulkTaskItem `json:"items"`
}

// createTasksBulk turns a material list into shopping tasks
// @Summary Bulk create tasks
// @Description Creates one "Comprar: ..." task per material item, preserving order
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body bulkTaskRequest true "Material items to turn into tasks"
// @Success 201 {object} TaskCollection "Created tasks"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid request"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /tasks/bulk [post]
func (h taskHandler) createTasksBulk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.ProjectID == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("projectId is required"))
			return
		}
		if len(req.Items) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("items must not be empty"))
			return
		}

		if _, err := h.projectRepo.FindByID(req.ProjectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		tasks := make([]*models.Task, 0, len(req.Items))
		for _, item := range req.Items {
			if item.Name == "" {
				continue
			}
			tasks = append(tasks, &models.Task{
				ProjectID: req.ProjectID,
				Title:     fmt.Sprintf("Comprar: %s de %s", item.Quantity, item.Name),
			})
		}
		if len(tasks) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("items must contain at least one name"))
			return
		}

		if err := h.taskRepo.AddAll(tasks); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tasks", "tasks", err))
			return
		}

		collection := TaskCollection{Total: len(tasks)}
		for _, task := range tasks {
			collection.Tasks = append(collection.Tasks, *task)
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, collection)
	}
}

// toggleTask flips a task between done and pending
// @Summary Toggle task
// @Description Flips a task's completion flag
// @Tags Tasks
// @Accept json
// @Produce json
// @Param taskID path int true "Task ID"
// @Success 200 {object} models.Task "Updated task"
// @Failure 404 {object} ErrorResponse "Not Found - Task not found"
// @Router /task/{taskID}/toggle [put]
func (h taskHandler) toggleTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := parseID(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task, err := h.taskRepo.FindByID(taskID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task", err))
			return
		}

		if err := h.taskRepo.SetDone(taskID, !task.IsDone); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update task", "task", err))
			return
		}

		task.IsDone = !task.IsDone
		h.responder.WriteJSON(w, task)
	}
}

// deleteTask deletes a task by ID
// @Summary Delete task
// @Description Deletes a task from the database by ID
// @Tags Tasks
// @Accept json
// @Produce json
// @Param taskID path int true "Task ID"
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Task not found"
// @Router /task/{taskID} [delete]
func (h taskHandler) deleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := parseID(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.taskRepo.FindByID(taskID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task", err))
			return
		}

		if err := h.taskRepo.Delete(taskID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete task", "task", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "task deleted successfully",
		})
	}
}
