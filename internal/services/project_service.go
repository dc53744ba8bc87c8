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
	ErrProjectTitleRequired = errors.New("project title is required")
	ErrProjectOwnParent     = errors.New("a project cannot be its own parent")
	ErrGrantExists          = errors.New("user already has access to this project")
	ErrGrantNotFound        = errors.New("project grant not found")
	ErrInvalidRight         = errors.New("right must be 0 (read), 1 (write) or 2 (admin)")
)

// ProjectService provides business logic for project operations. Every
// mutation checks the required right before touching the database.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	perms       *PermissionService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, perms *PermissionService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		perms:       perms,
	}
}

// ListProjectsInput represents filters for listing projects.
type ListProjectsInput struct {
	IsArchived      *bool
	ParentProjectID *uint64
	Page            int
	PerPage         int
}

// ListProjects returns projects the user can read, ordered by position then
// created_at.
func (s *ProjectService) ListProjects(userID uint64, input ListProjectsInput) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		IsArchived:      input.IsArchived,
		ParentProjectID: input.ParentProjectID,
		Page:            input.Page,
		PerPage:         input.PerPage,
	}

	projects, total, err := s.projectRepo.ListAccessible(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Title           string
	Description     string
	Identifier      string
	ParentProjectID *uint64
	Position        float64
	HexColor        string
	IsArchived      bool
	IsFavorite      bool
}

// CreateProject creates a project owned by the user.
func (s *ProjectService) CreateProject(userID uint64, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	if input.ParentProjectID != nil {
		if _, err := s.perms.RequireProjectRight(userID, *input.ParentProjectID, models.RightRead); err != nil {
			return nil, err
		}
	}

	project := &models.Project{
		Title:           input.Title,
		Description:     input.Description,
		Identifier:      input.Identifier,
		ParentProjectID: input.ParentProjectID,
		Position:        input.Position,
		HexColor:        input.HexColor,
		IsArchived:      input.IsArchived,
		IsFavorite:      input.IsFavorite,
		OwnerID:         userID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project the user can read.
func (s *ProjectService) GetProject(userID, projectID uint64) (*models.Project, error) {
	return s.perms.RequireProjectRight(userID, projectID, models.RightRead)
}

// UpdateProjectInput carries a sparse project update. Nil means untouched;
// ClearParentProject distinguishes an explicit null from an absent field.
type UpdateProjectInput struct {
	Title              *string
	Description        *string
	Identifier         *string
	ParentProjectID    *uint64
	ClearParentProject bool
	Position           *float64
	HexColor           *string
	IsArchived         *bool
	IsFavorite         *bool
}

// UpdateProject applies a sparse update; requires write access.
func (s *ProjectService) UpdateProject(userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.perms.RequireProjectRight(userID, projectID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrProjectTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Identifier != nil {
		project.Identifier = *input.Identifier
	}
	if input.ClearParentProject {
		project.ParentProjectID = nil
	} else if input.ParentProjectID != nil {
		if *input.ParentProjectID == projectID {
			return nil, ErrProjectOwnParent
		}
		project.ParentProjectID = input.ParentProjectID
	}
	if input.Position != nil {
		project.Position = *input.Position
	}
	if input.HexColor != nil {
		project.HexColor = *input.HexColor
	}
	if input.IsArchived != nil {
		project.IsArchived = *input.IsArchived
	}
	if input.IsFavorite != nil {
		project.IsFavorite = *input.IsFavorite
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything under it; requires admin.
func (s *ProjectService) DeleteProject(userID, projectID uint64) error {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightAdmin); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ListGrants lists the grant rows on a project; requires read access.
func (s *ProjectService) ListGrants(userID, projectID uint64) ([]models.ProjectUser, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightRead); err != nil {
		return nil, err
	}

	grants, err := s.projectRepo.ListGrants(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project grants: %w", err)
	}

	return grants, nil
}

// AddGrant gives another user a right on the project; requires admin. The
// owner never gets a grant row.
func (s *ProjectService) AddGrant(userID, projectID, targetUserID uint64, right models.Right) (*models.ProjectUser, error) {
	project, err := s.perms.RequireProjectRight(userID, projectID, models.RightAdmin)
	if err != nil {
		return nil, err
	}

	if !right.Valid() {
		return nil, ErrInvalidRight
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if project.OwnerID == targetUserID {
		return nil, ErrGrantExists
	}
	if _, err := s.projectRepo.FindGrant(projectID, targetUserID); err == nil {
		return nil, ErrGrantExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing grant: %w", err)
	}

	grant := &models.ProjectUser{
		ProjectID: projectID,
		UserID:    targetUserID,
		Right:     right,
	}

	if err := s.projectRepo.CreateGrant(grant); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	return grant, nil
}

// UpdateGrant changes the right on an existing grant; requires admin.
func (s *ProjectService) UpdateGrant(userID, projectID, targetUserID uint64, right models.Right) (*models.ProjectUser, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightAdmin); err != nil {
		return nil, err
	}

	if !right.Valid() {
		return nil, ErrInvalidRight
	}

	grant, err := s.projectRepo.FindGrant(projectID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("failed to find grant: %w", err)
	}

	grant.Right = right
	if err := s.projectRepo.UpdateGrant(grant); err != nil {
		return nil, fmt.Errorf("failed to update grant: %w", err)
	}

	return grant, nil
}

// RemoveGrant revokes a user's access; requires admin.
func (s *ProjectService) RemoveGrant(userID, projectID, targetUserID uint64) error {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightAdmin); err != nil {
		return err
	}

	if _, err := s.projectRepo.FindGrant(projectID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrantNotFound
		}
		return fmt.Errorf("failed to find grant: %w", err)
	}

	if err := s.projectRepo.DeleteGrant(projectID, targetUserID); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	return nil
}
