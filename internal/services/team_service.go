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
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrAlreadyTeamMember  = errors.New("user is already a member of this team")
	ErrTeamMemberNotFound = errors.New("team member not found")
)

// TeamService provides business logic for team operations. Team admin
// rights come from creatorship or the member admin flag.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	perms    *PermissionService
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, perms *PermissionService) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		perms:    perms,
	}
}

// ListTeams returns teams the user created or is a member of.
func (s *TeamService) ListTeams(userID uint64) ([]models.Team, error) {
	teams, err := s.teamRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// CreateTeamInput represents input for creating a team.
type CreateTeamInput struct {
	Name        string
	Description string
}

// CreateTeam creates a team owned by the user.
func (s *TeamService) CreateTeam(userID uint64, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		CreatedByID: userID,
	}

	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// GetTeam returns a team the user can see.
func (s *TeamService) GetTeam(userID, teamID uint64) (*models.Team, error) {
	return s.perms.RequireTeamRight(userID, teamID, models.RightRead)
}

// UpdateTeamInput carries a sparse team update.
type UpdateTeamInput struct {
	Name        *string
	Description *string
}

// UpdateTeam applies a sparse update; requires team admin.
func (s *TeamService) UpdateTeam(userID, teamID uint64, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.perms.RequireTeamRight(userID, teamID, models.RightAdmin)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team and its memberships; requires team admin.
func (s *TeamService) DeleteTeam(userID, teamID uint64) error {
	if _, err := s.perms.RequireTeamRight(userID, teamID, models.RightAdmin); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// ListMembers lists a team's members; requires membership.
func (s *TeamService) ListMembers(userID, teamID uint64) ([]models.TeamMember, error) {
	if _, err := s.perms.RequireTeamRight(userID, teamID, models.RightRead); err != nil {
		return nil, err
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}

// AddMember adds a user to a team; requires team admin.
func (s *TeamService) AddMember(userID, teamID, targetUserID uint64, admin bool) (*models.TeamMember, error) {
	if _, err := s.perms.RequireTeamRight(userID, teamID, models.RightAdmin); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.teamRepo.FindMember(teamID, targetUserID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check team member: %w", err)
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: targetUserID,
		Admin:  admin,
	}

	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a user from a team; requires team admin.
func (s *TeamService) RemoveMember(userID, teamID, targetUserID uint64) error {
	if _, err := s.perms.RequireTeamRight(userID, teamID, models.RightAdmin); err != nil {
		return err
	}

	if _, err := s.teamRepo.FindMember(teamID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to find team member: %w", err)
	}

	if err := s.teamRepo.RemoveMember(teamID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	return nil
}
