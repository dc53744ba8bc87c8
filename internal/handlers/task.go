package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/dto"
	apierrors "github.com/Lparksi/vikunja-1/internal/errors"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/services"
	"github.com/Lparksi/vikunja-1/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func doneFilter(c *gin.Context) *bool {
	v, ok := c.GetQuery("done")
	if !ok {
		return nil
	}
	done := v == "true" || v == "1"
	return &done
}

// ListAll returns tasks across every project the caller can read, most
// urgent first.
func (h *TaskHandler) ListAll(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	pagination := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListAllTasks(userID, services.ListAllTasksInput{
		Done:    doneFilter(c),
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: tasks,
		PaginationResponse: utils.PaginationResponse{
			Page:    pagination.Page,
			PerPage: pagination.PerPage,
			Total:   total,
		},
	})
}

// ListProjectTasks returns a project's tasks in board order.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	pagination := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListProjectTasks(userID, projectID, services.ListProjectTasksInput{
		Done:    doneFilter(c),
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: tasks,
		PaginationResponse: utils.PaginationResponse{
			Page:    pagination.Page,
			PerPage: pagination.PerPage,
			Total:   total,
		},
	})
}

// Create makes a new task in a project.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type CreateTaskRequest struct {
		Title        string     `json:"title" binding:"required,max=500"`
		Description  string     `json:"description"`
		Done         bool       `json:"done"`
		DueDate      *time.Time `json:"due_date"`
		StartDate    *time.Time `json:"start_date"`
		EndDate      *time.Time `json:"end_date"`
		Priority     int        `json:"priority"`
		Position     float64    `json:"position"`
		RepeatAfter  int        `json:"repeat_after"`
		RepeatMode   int        `json:"repeat_mode"`
		HexColor     string     `json:"hex_color" binding:"max=6"`
		BucketID     *uint64    `json:"bucket_id"`
		ParentTaskID *uint64    `json:"parent_task_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, projectID, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Done:         req.Done,
		DueDate:      req.DueDate,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Priority:     req.Priority,
		Position:     req.Position,
		RepeatAfter:  req.RepeatAfter,
		RepeatMode:   req.RepeatMode,
		HexColor:     req.HexColor,
		BucketID:     req.BucketID,
		ParentTaskID: req.ParentTaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Get returns a single task.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update applies a sparse update to a task.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title          *string    `json:"title" binding:"omitempty,max=500"`
		Description    *string    `json:"description"`
		Done           *bool      `json:"done"`
		DueDate        *time.Time `json:"due_date"`
		StartDate      *time.Time `json:"start_date"`
		EndDate        *time.Time `json:"end_date"`
		Priority       *int       `json:"priority"`
		Position       *float64   `json:"position"`
		KanbanPosition *float64   `json:"kanban_position"`
		RepeatAfter    *int       `json:"repeat_after"`
		RepeatMode     *int       `json:"repeat_mode"`
		HexColor       *string    `json:"hex_color" binding:"omitempty,max=6"`
		BucketID       *uint64    `json:"bucket_id"`
		ParentTaskID   *uint64    `json:"parent_task_id"`
	}

	var req UpdateTaskRequest
	raw, err := bindSparse(c, &req)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(userID, taskID, services.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Done:            req.Done,
		DueDate:         req.DueDate,
		ClearDueDate:    fieldIsNull(raw, "due_date"),
		StartDate:       req.StartDate,
		ClearStartDate:  fieldIsNull(raw, "start_date"),
		EndDate:         req.EndDate,
		ClearEndDate:    fieldIsNull(raw, "end_date"),
		Priority:        req.Priority,
		Position:        req.Position,
		KanbanPosition:  req.KanbanPosition,
		RepeatAfter:     req.RepeatAfter,
		RepeatMode:      req.RepeatMode,
		HexColor:        req.HexColor,
		BucketID:        req.BucketID,
		ClearBucket:     fieldIsNull(raw, "bucket_id"),
		ParentTaskID:    req.ParentTaskID,
		ClearParentTask: fieldIsNull(raw, "parent_task_id"),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ListLabels lists the labels attached to a task.
func (h *TaskHandler) ListLabels(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	labels, err := h.taskService.ListTaskLabels(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, labels)
}

// AttachLabel puts one of the caller's labels on a task.
func (h *TaskHandler) AttachLabel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AttachLabelRequest struct {
		LabelID uint64 `json:"label_id" binding:"required"`
	}

	var req AttachLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.taskService.AttachLabel(userID, taskID, req.LabelID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// DetachLabel removes a label from a task.
func (h *TaskHandler) DetachLabel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}
	labelID, ok := parseIDParam(c, "labelID")
	if !ok {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	if err := h.taskService.DetachLabel(userID, taskID, labelID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label removed from task"})
}

// respondTaskError maps task service errors to HTTP responses.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, "Label not found")
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTaskTitleRequired):
		apierrors.BadRequest(c, "Task title is required")
	case errors.Is(err, services.ErrTaskOwnParent):
		apierrors.BadRequest(c, "A task cannot be its own parent")
	case errors.Is(err, services.ErrLabelAlreadyAttached):
		apierrors.Conflict(c, "Label is already attached to this task")
	default:
		apierrors.InternalError(c, "")
	}
}
