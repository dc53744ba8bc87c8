package dto

import (
	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/utils"
)

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	utils.PaginationResponse
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks"`
	utils.PaginationResponse
}

// TeamMemberDTO represents a team member with the user expanded
type TeamMemberDTO struct {
	ID     uint64   `json:"id"`
	TeamID uint64   `json:"team_id"`
	UserID uint64   `json:"user_id"`
	Admin  bool     `json:"admin"`
	User   *UserDTO `json:"user,omitempty"`
}

// ToTeamMemberDTO converts a team member to DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	dto := TeamMemberDTO{
		ID:     member.ID,
		TeamID: member.TeamID,
		UserID: member.UserID,
		Admin:  member.Admin,
	}
	if member.User != nil {
		user := ToUserDTO(*member.User)
		dto.User = &user
	}
	return dto
}

// ToTeamMemberDTOs converts a slice of team members
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamMemberDTO(member)
	}
	return dtos
}

// InfoResponse is the unauthenticated instance description.
type InfoResponse struct {
	Version                string   `json:"version"`
	FrontendURL            string   `json:"frontend_url"`
	Motd                   string   `json:"motd"`
	LinkSharingEnabled     bool     `json:"link_sharing_enabled"`
	MaxFileSize            string   `json:"max_file_size"`
	RegistrationEnabled    bool     `json:"registration_enabled"`
	AvailableMigrators     []string `json:"available_migrators"`
	TaskAttachmentsEnabled bool     `json:"task_attachments_enabled"`
	TotpEnabled            bool     `json:"totp_enabled"`
	EmailRemindersEnabled  bool     `json:"email_reminders_enabled"`
	UserDeletionEnabled    bool     `json:"user_deletion_enabled"`
	TaskCommentsEnabled    bool     `json:"task_comments_enabled"`
	WebhooksEnabled        bool     `json:"webhooks_enabled"`
	PublicTeamsEnabled     bool     `json:"public_teams_enabled"`
	CaldavEnabled          bool     `json:"caldav_enabled"`
}
