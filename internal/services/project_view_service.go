package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var (
	ErrViewNotFound        = errors.New("project view not found")
	ErrBucketNotFound      = errors.New("bucket not found")
	ErrViewTitleRequired   = errors.New("view title is required")
	ErrInvalidViewKind     = errors.New("view kind must be 0 (list), 1 (gantt), 2 (table) or 3 (kanban)")
	ErrBucketTitleRequired = errors.New("bucket title is required")
)

// ProjectViewService provides business logic for views and their kanban
// buckets. All rights derive from the owning project.
type ProjectViewService struct {
	viewRepo repository.ProjectViewRepository
	perms    *PermissionService
}

// NewProjectViewService creates a new ProjectViewService.
func NewProjectViewService(viewRepo repository.ProjectViewRepository, perms *PermissionService) *ProjectViewService {
	return &ProjectViewService{
		viewRepo: viewRepo,
		perms:    perms,
	}
}

// ListViews lists a project's views; requires read access.
func (s *ProjectViewService) ListViews(userID, projectID uint64) ([]models.ProjectView, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightRead); err != nil {
		return nil, err
	}

	views, err := s.viewRepo.ListViews(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	return views, nil
}

// CreateViewInput represents input for creating a project view.
type CreateViewInput struct {
	Title               string
	ViewKind            int
	Position            float64
	Filter              string
	BucketConfiguration string
}

// CreateView creates a view on a project; requires write access.
func (s *ProjectViewService) CreateView(userID, projectID uint64, input CreateViewInput) (*models.ProjectView, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightWrite); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrViewTitleRequired
	}
	if input.ViewKind < models.ProjectViewKindList || input.ViewKind > models.ProjectViewKindKanban {
		return nil, ErrInvalidViewKind
	}

	view := &models.ProjectView{
		Title:               input.Title,
		ViewKind:            input.ViewKind,
		Position:            input.Position,
		Filter:              input.Filter,
		BucketConfiguration: input.BucketConfiguration,
		ProjectID:           projectID,
	}

	if err := s.viewRepo.CreateView(view); err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}

	return view, nil
}

// UpdateViewInput carries a sparse view update.
type UpdateViewInput struct {
	Title               *string
	ViewKind            *int
	Position            *float64
	Filter              *string
	BucketConfiguration *string
}

// UpdateView applies a sparse update; requires write access.
func (s *ProjectViewService) UpdateView(userID, projectID, viewID uint64, input UpdateViewInput) (*models.ProjectView, error) {
	view, err := s.findProjectView(userID, projectID, viewID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrViewTitleRequired
		}
		view.Title = *input.Title
	}
	if input.ViewKind != nil {
		if *input.ViewKind < models.ProjectViewKindList || *input.ViewKind > models.ProjectViewKindKanban {
			return nil, ErrInvalidViewKind
		}
		view.ViewKind = *input.ViewKind
	}
	if input.Position != nil {
		view.Position = *input.Position
	}
	if input.Filter != nil {
		view.Filter = *input.Filter
	}
	if input.BucketConfiguration != nil {
		view.BucketConfiguration = *input.BucketConfiguration
	}

	if err := s.viewRepo.UpdateView(view); err != nil {
		return nil, fmt.Errorf("failed to update view: %w", err)
	}

	return view, nil
}

// DeleteView removes a view and its buckets; requires write access.
func (s *ProjectViewService) DeleteView(userID, projectID, viewID uint64) error {
	view, err := s.findProjectView(userID, projectID, viewID, models.RightWrite)
	if err != nil {
		return err
	}

	if err := s.viewRepo.DeleteView(view.ID); err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}

	return nil
}

// ListBuckets lists a view's buckets; requires read access.
func (s *ProjectViewService) ListBuckets(userID, projectID, viewID uint64) ([]models.Bucket, error) {
	if _, err := s.findProjectView(userID, projectID, viewID, models.RightRead); err != nil {
		return nil, err
	}

	buckets, err := s.viewRepo.ListBuckets(viewID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	return buckets, nil
}

// CreateBucketInput represents input for creating a bucket.
type CreateBucketInput struct {
	Title    string
	Position float64
	Limit    int
}

// CreateBucket creates a bucket in a view; requires write access.
func (s *ProjectViewService) CreateBucket(userID, projectID, viewID uint64, input CreateBucketInput) (*models.Bucket, error) {
	view, err := s.findProjectView(userID, projectID, viewID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrBucketTitleRequired
	}

	bucket := &models.Bucket{
		Title:         input.Title,
		Position:      input.Position,
		Limit:         input.Limit,
		ProjectID:     view.ProjectID,
		ProjectViewID: view.ID,
		CreatedByID:   userID,
	}

	if err := s.viewRepo.CreateBucket(bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return bucket, nil
}

// UpdateBucketInput carries a sparse bucket update.
type UpdateBucketInput struct {
	Title    *string
	Position *float64
	Limit    *int
}

// UpdateBucket applies a sparse update; requires write access.
func (s *ProjectViewService) UpdateBucket(userID, projectID, viewID, bucketID uint64, input UpdateBucketInput) (*models.Bucket, error) {
	bucket, err := s.findViewBucket(userID, projectID, viewID, bucketID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrBucketTitleRequired
		}
		bucket.Title = *input.Title
	}
	if input.Position != nil {
		bucket.Position = *input.Position
	}
	if input.Limit != nil {
		bucket.Limit = *input.Limit
	}

	if err := s.viewRepo.UpdateBucket(bucket); err != nil {
		return nil, fmt.Errorf("failed to update bucket: %w", err)
	}

	return bucket, nil
}

// DeleteBucket removes a bucket and detaches its tasks; requires write
// access.
func (s *ProjectViewService) DeleteBucket(userID, projectID, viewID, bucketID uint64) error {
	bucket, err := s.findViewBucket(userID, projectID, viewID, bucketID)
	if err != nil {
		return err
	}

	if err := s.viewRepo.DeleteBucket(bucket.ID); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}

	return nil
}

// findProjectView resolves a view under a project after checking the
// required right. A view that belongs to a different project is reported as
// missing.
func (s *ProjectViewService) findProjectView(userID, projectID, viewID uint64, min models.Right) (*models.ProjectView, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, min); err != nil {
		return nil, err
	}

	view, err := s.viewRepo.FindViewByID(viewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrViewNotFound
		}
		return nil, fmt.Errorf("failed to find view: %w", err)
	}
	if view.ProjectID != projectID {
		return nil, ErrViewNotFound
	}

	return view, nil
}

func (s *ProjectViewService) findViewBucket(userID, projectID, viewID, bucketID uint64) (*models.Bucket, error) {
	view, err := s.findProjectView(userID, projectID, viewID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	bucket, err := s.viewRepo.FindBucketByID(bucketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBucketNotFound
		}
		return nil, fmt.Errorf("failed to find bucket: %w", err)
	}
	if bucket.ProjectViewID != view.ID {
		return nil, ErrBucketNotFound
	}

	return bucket, nil
}
