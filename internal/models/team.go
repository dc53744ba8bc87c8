package models

import (
	"time"
)

type Team struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(250);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatedByID uint64 `gorm:"not null;index" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy *User        `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember records a user's membership in a team. The admin flag is
// team-level administration, independent of any project right.
type TeamMember struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TeamID    uint64    `gorm:"not null;index:idx_team_members_team_user,unique" json:"team_id"`
	UserID    uint64    `gorm:"not null;index:idx_team_members_team_user,unique" json:"user_id"`
	Admin     bool      `gorm:"default:false" json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Team *Team `gorm:"foreignKey:TeamID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TeamProject grants a team a right on a project. The rows are part of the
// schema but the permission queries do not consult them yet; enforcement of
// team-mediated project access is deferred.
type TeamProject struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TeamID    uint64    `gorm:"not null;index" json:"team_id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	Right     Right     `gorm:"not null;default:0" json:"right"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Team    *Team    `gorm:"foreignKey:TeamID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
