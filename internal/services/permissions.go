package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var (
	// ErrProjectNotFound covers both a missing project and one the user has
	// no read visibility on; the two cases are deliberately
	// indistinguishable.
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTeamNotFound    = errors.New("team not found")
	// ErrPermissionDenied means the user can read the resource but lacks the
	// required write or admin level.
	ErrPermissionDenied = errors.New("insufficient permissions")
)

// PermissionService computes the effective permission level for a
// (user, resource) pair. Project access combines ownership with direct
// ProjectUser grants; task access derives from the task's project; team
// access combines creatorship with the member admin flag. TeamProject rows
// are present in the schema but not consulted here.
type PermissionService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	teamRepo    repository.TeamRepository
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, teamRepo repository.TeamRepository) *PermissionService {
	return &PermissionService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		teamRepo:    teamRepo,
	}
}

// ProjectRight returns the user's effective right on a project: the owner
// holds admin implicitly, otherwise the grant row decides, otherwise none.
func (s *PermissionService) ProjectRight(userID, projectID uint64) (models.Right, *models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RightNone, nil, ErrProjectNotFound
		}
		return models.RightNone, nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID == userID {
		return models.RightAdmin, project, nil
	}

	grant, err := s.projectRepo.FindGrant(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RightNone, project, nil
		}
		return models.RightNone, nil, fmt.Errorf("failed to find project grant: %w", err)
	}

	return grant.Right, project, nil
}

// RequireProjectRight returns the project when the user holds at least min.
// A read-level failure collapses to ErrProjectNotFound so that invisible and
// absent projects are indistinguishable; a write- or admin-level failure on
// a readable project yields ErrPermissionDenied.
func (s *PermissionService) RequireProjectRight(userID, projectID uint64, min models.Right) (*models.Project, error) {
	right, project, err := s.ProjectRight(userID, projectID)
	if err != nil {
		return nil, err
	}

	if right == models.RightNone {
		return nil, ErrProjectNotFound
	}
	if !right.Includes(min) {
		return nil, ErrPermissionDenied
	}

	return project, nil
}

// AccessibleProjectIDs materializes the set of project ids the user can
// read. Cross-project listings must filter on this set; SQL cannot join the
// access paths directly.
func (s *PermissionService) AccessibleProjectIDs(userID uint64) ([]uint64, error) {
	ids, err := s.projectRepo.AccessibleIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accessible projects: %w", err)
	}
	return ids, nil
}

// RequireTaskRight resolves the task's project and applies the project rule.
// There is no per-task grant. An invisible project makes the task itself
// report ErrTaskNotFound.
func (s *PermissionService) RequireTaskRight(userID, taskID uint64, min models.Right) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.RequireProjectRight(userID, task.ProjectID, min); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// TeamRight returns the user's effective right on a team: the creator and
// admin members hold admin, plain members hold read, everyone else none.
func (s *PermissionService) TeamRight(userID, teamID uint64) (models.Right, *models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RightNone, nil, ErrTeamNotFound
		}
		return models.RightNone, nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.CreatedByID == userID {
		return models.RightAdmin, team, nil
	}

	member, err := s.teamRepo.FindMember(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RightNone, team, nil
		}
		return models.RightNone, nil, fmt.Errorf("failed to find team member: %w", err)
	}

	if member.Admin {
		return models.RightAdmin, team, nil
	}
	return models.RightRead, team, nil
}

// RequireTeamRight mirrors RequireProjectRight for teams.
func (s *PermissionService) RequireTeamRight(userID, teamID uint64, min models.Right) (*models.Team, error) {
	right, team, err := s.TeamRight(userID, teamID)
	if err != nil {
		return nil, err
	}

	if right == models.RightNone {
		return nil, ErrTeamNotFound
	}
	if !right.Includes(min) {
		return nil, ErrPermissionDenied
	}

	return team, nil
}
