package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Lparksi/vikunja-1/internal/errors"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/services"
)

// ProjectViewHandler coordinates view and bucket HTTP handlers.
type ProjectViewHandler struct {
	viewService *services.ProjectViewService
}

// NewProjectViewHandler creates a new ProjectViewHandler.
func NewProjectViewHandler(viewService *services.ProjectViewService) *ProjectViewHandler {
	return &ProjectViewHandler{
		viewService: viewService,
	}
}

// viewRouteIDs pulls the caller and the project/view path parameters.
func viewRouteIDs(c *gin.Context) (userID, projectID, viewID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, 0, false
	}

	projectID, idOK := parseIDParam(c, "id")
	if !idOK {
		apierrors.BadRequest(c, "Invalid project ID")
		return 0, 0, 0, false
	}

	if c.Param("viewID") != "" {
		viewID, idOK = parseIDParam(c, "viewID")
		if !idOK {
			apierrors.BadRequest(c, "Invalid view ID")
			return 0, 0, 0, false
		}
	}

	return userID, projectID, viewID, true
}

// ListViews lists a project's views.
func (h *ProjectViewHandler) ListViews(c *gin.Context) {
	userID, projectID, _, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	views, err := h.viewService.ListViews(userID, projectID)
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateView makes a new view on a project.
func (h *ProjectViewHandler) CreateView(c *gin.Context) {
	userID, projectID, _, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	type CreateViewRequest struct {
		Title               string  `json:"title" binding:"required,max=250"`
		ViewKind            int     `json:"view_kind"`
		Position            float64 `json:"position"`
		Filter              string  `json:"filter"`
		BucketConfiguration string  `json:"bucket_configuration"`
	}

	var req CreateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.viewService.CreateView(userID, projectID, services.CreateViewInput{
		Title:               req.Title,
		ViewKind:            req.ViewKind,
		Position:            req.Position,
		Filter:              req.Filter,
		BucketConfiguration: req.BucketConfiguration,
	})
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateView applies a sparse update to a view.
func (h *ProjectViewHandler) UpdateView(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	type UpdateViewRequest struct {
		Title               *string  `json:"title" binding:"omitempty,max=250"`
		ViewKind            *int     `json:"view_kind"`
		Position            *float64 `json:"position"`
		Filter              *string  `json:"filter"`
		BucketConfiguration *string  `json:"bucket_configuration"`
	}

	var req UpdateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.viewService.UpdateView(userID, projectID, viewID, services.UpdateViewInput{
		Title:               req.Title,
		ViewKind:            req.ViewKind,
		Position:            req.Position,
		Filter:              req.Filter,
		BucketConfiguration: req.BucketConfiguration,
	})
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteView removes a view and its buckets.
func (h *ProjectViewHandler) DeleteView(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	if err := h.viewService.DeleteView(userID, projectID, viewID); err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "View deleted successfully"})
}

// ListBuckets lists a view's buckets.
func (h *ProjectViewHandler) ListBuckets(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	buckets, err := h.viewService.ListBuckets(userID, projectID, viewID)
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}

// CreateBucket makes a new bucket in a view.
func (h *ProjectViewHandler) CreateBucket(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	type CreateBucketRequest struct {
		Title    string  `json:"title" binding:"required,max=250"`
		Position float64 `json:"position"`
		Limit    int     `json:"limit" binding:"min=0"`
	}

	var req CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bucket, err := h.viewService.CreateBucket(userID, projectID, viewID, services.CreateBucketInput{
		Title:    req.Title,
		Position: req.Position,
		Limit:    req.Limit,
	})
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bucket)
}

// UpdateBucket applies a sparse update to a bucket.
func (h *ProjectViewHandler) UpdateBucket(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	bucketID, idOK := parseIDParam(c, "bucketID")
	if !idOK {
		apierrors.BadRequest(c, "Invalid bucket ID")
		return
	}

	type UpdateBucketRequest struct {
		Title    *string  `json:"title" binding:"omitempty,max=250"`
		Position *float64 `json:"position"`
		Limit    *int     `json:"limit" binding:"omitempty,min=0"`
	}

	var req UpdateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bucket, err := h.viewService.UpdateBucket(userID, projectID, viewID, bucketID, services.UpdateBucketInput{
		Title:    req.Title,
		Position: req.Position,
		Limit:    req.Limit,
	})
	if err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, bucket)
}

// DeleteBucket removes a bucket and detaches its tasks.
func (h *ProjectViewHandler) DeleteBucket(c *gin.Context) {
	userID, projectID, viewID, ok := viewRouteIDs(c)
	if !ok {
		return
	}

	bucketID, idOK := parseIDParam(c, "bucketID")
	if !idOK {
		apierrors.BadRequest(c, "Invalid bucket ID")
		return
	}

	if err := h.viewService.DeleteBucket(userID, projectID, viewID, bucketID); err != nil {
		respondViewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bucket deleted successfully"})
}

// respondViewError maps view service errors to HTTP responses.
func respondViewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrViewNotFound):
		apierrors.NotFound(c, "View not found")
	case errors.Is(err, services.ErrBucketNotFound):
		apierrors.NotFound(c, "Bucket not found")
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrViewTitleRequired):
		apierrors.BadRequest(c, "View title is required")
	case errors.Is(err, services.ErrBucketTitleRequired):
		apierrors.BadRequest(c, "Bucket title is required")
	case errors.Is(err, services.ErrInvalidViewKind):
		apierrors.BadRequest(c, "View kind must be 0 (list), 1 (gantt), 2 (table) or 3 (kanban)")
	default:
		apierrors.InternalError(c, "")
	}
}
