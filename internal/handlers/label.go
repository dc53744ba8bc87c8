package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Lparksi/vikunja-1/internal/errors"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/services"
)

// LabelHandler coordinates label-related HTTP handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// List returns the caller's labels.
func (h *LabelHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	labels, err := h.labelService.ListLabels(userID)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, labels)
}

// Create makes a new label owned by the caller.
func (h *LabelHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateLabelRequest struct {
		Title       string `json:"title" binding:"required,max=250"`
		Description string `json:"description"`
		HexColor    string `json:"hex_color" binding:"max=6"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.CreateLabel(userID, services.CreateLabelInput{
		Title:       req.Title,
		Description: req.Description,
		HexColor:    req.HexColor,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, label)
}

// Get returns one of the caller's labels.
func (h *LabelHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	labelID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	label, err := h.labelService.GetLabel(userID, labelID)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

// Update applies a sparse update to one of the caller's labels.
func (h *LabelHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	labelID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	type UpdateLabelRequest struct {
		Title       *string `json:"title" binding:"omitempty,max=250"`
		Description *string `json:"description"`
		HexColor    *string `json:"hex_color" binding:"omitempty,max=6"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.UpdateLabel(userID, labelID, services.UpdateLabelInput{
		Title:       req.Title,
		Description: req.Description,
		HexColor:    req.HexColor,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

// Delete removes one of the caller's labels.
func (h *LabelHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	labelID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid label ID")
		return
	}

	if err := h.labelService.DeleteLabel(userID, labelID); err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}

// respondLabelError maps label service errors to HTTP responses.
func respondLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, "Label not found")
	case errors.Is(err, services.ErrLabelTitleRequired):
		apierrors.BadRequest(c, "Label title is required")
	default:
		apierrors.InternalError(c, "")
	}
}
