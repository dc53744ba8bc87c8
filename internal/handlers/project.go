package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/dto"
	apierrors "github.com/Lparksi/vikunja-1/internal/errors"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/services"
	"github.com/Lparksi/vikunja-1/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List returns the projects the caller can read.
func (h *ProjectHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	pagination := utils.GetPaginationParams(c)

	input := services.ListProjectsInput{
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	}
	if v, ok := c.GetQuery("is_archived"); ok {
		archived := v == "true" || v == "1"
		input.IsArchived = &archived
	}
	if v, ok := c.GetQuery("parent_project_id"); ok {
		parentID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid parent_project_id")
			return
		}
		input.ParentProjectID = &parentID
	}

	projects, total, err := h.projectService.ListProjects(userID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: projects,
		PaginationResponse: utils.PaginationResponse{
			Page:    pagination.Page,
			PerPage: pagination.PerPage,
			Total:   total,
		},
	})
}

// Create makes a new project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Title           string  `json:"title" binding:"required,max=250"`
		Description     string  `json:"description"`
		Identifier      string  `json:"identifier" binding:"max=10"`
		ParentProjectID *uint64 `json:"parent_project_id"`
		Position        float64 `json:"position"`
		HexColor        string  `json:"hex_color" binding:"max=6"`
		IsArchived      bool    `json:"is_archived"`
		IsFavorite      bool    `json:"is_favorite"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(userID, services.CreateProjectInput{
		Title:           req.Title,
		Description:     req.Description,
		Identifier:      req.Identifier,
		ParentProjectID: req.ParentProjectID,
		Position:        req.Position,
		HexColor:        req.HexColor,
		IsArchived:      req.IsArchived,
		IsFavorite:      req.IsFavorite,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
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

	project, err := h.projectService.GetProject(userID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update applies a sparse update to a project.
func (h *ProjectHandler) Update(c *gin.Context) {
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

	type UpdateProjectRequest struct {
		Title           *string  `json:"title" binding:"omitempty,max=250"`
		Description     *string  `json:"description"`
		Identifier      *string  `json:"identifier" binding:"omitempty,max=10"`
		ParentProjectID *uint64  `json:"parent_project_id"`
		Position        *float64 `json:"position"`
		HexColor        *string  `json:"hex_color" binding:"omitempty,max=6"`
		IsArchived      *bool    `json:"is_archived"`
		IsFavorite      *bool    `json:"is_favorite"`
	}

	var req UpdateProjectRequest
	raw, err := bindSparse(c, &req)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(userID, projectID, services.UpdateProjectInput{
		Title:              req.Title,
		Description:        req.Description,
		Identifier:         req.Identifier,
		ParentProjectID:    req.ParentProjectID,
		ClearParentProject: fieldIsNull(raw, "parent_project_id"),
		Position:           req.Position,
		HexColor:           req.HexColor,
		IsArchived:         req.IsArchived,
		IsFavorite:         req.IsFavorite,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project and everything under it.
func (h *ProjectHandler) Delete(c *gin.Context) {
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

	if err := h.projectService.DeleteProject(userID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ListUsers lists the explicit grants on a project.
func (h *ProjectHandler) ListUsers(c *gin.Context) {
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

	grants, err := h.projectService.ListGrants(userID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, grants)
}

// AddUser grants another user a right on the project.
func (h *ProjectHandler) AddUser(c *gin.Context) {
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

	type AddUserRequest struct {
		UserID uint64       `json:"user_id" binding:"required"`
		Right  models.Right `json:"right"`
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	grant, err := h.projectService.AddGrant(userID, projectID, req.UserID, req.Right)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grant)
}

// UpdateUser changes the right on an existing grant.
func (h *ProjectHandler) UpdateUser(c *gin.Context) {
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
	targetUserID, ok := parseIDParam(c, "userID")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Right models.Right `json:"right"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	grant, err := h.projectService.UpdateGrant(userID, projectID, targetUserID, req.Right)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, grant)
}

// RemoveUser revokes a user's access to the project.
func (h *ProjectHandler) RemoveUser(c *gin.Context) {
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
	targetUserID, ok := parseIDParam(c, "userID")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveGrant(userID, projectID, targetUserID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from project"})
}

// respondProjectError maps project service errors to HTTP responses.
func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, "Project title is required")
	case errors.Is(err, services.ErrProjectOwnParent):
		apierrors.BadRequest(c, "A project cannot be its own parent")
	case errors.Is(err, services.ErrInvalidRight):
		apierrors.BadRequest(c, "Right must be 0 (read), 1 (write) or 2 (admin)")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrGrantExists):
		apierrors.Conflict(c, "User already has access to this project")
	case errors.Is(err, services.ErrGrantNotFound):
		apierrors.NotFound(c, "Project grant not found")
	default:
		apierrors.InternalError(c, "")
	}
}
