package models

import (
	"time"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(250);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(250);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(250);not null" json:"-"`
	Name         string `gorm:"type:varchar(250)" json:"name"`

	// Settings
	Timezone  string `gorm:"type:varchar(255)" json:"timezone"`
	WeekStart int    `gorm:"default:0" json:"week_start"` // 0 = Sunday, 1 = Monday
	Language  string `gorm:"type:varchar(5)" json:"language"`

	// Status
	IsActive         bool `gorm:"default:true" json:"is_active"`
	IsAdmin          bool `gorm:"default:false" json:"is_admin"`
	IsEmailConfirmed bool `gorm:"default:false" json:"is_email_confirmed"`
	TOTPEnabled      bool `gorm:"default:false" json:"totp_enabled"`

	// Avatar
	AvatarProvider string  `gorm:"type:varchar(255);default:'initials'" json:"avatar_provider"`
	AvatarFileID   *uint64 `json:"avatar_file_id"`

	// Settings blob (opaque serialized configuration)
	Settings string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	OwnedProjects []Project `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedTasks  []Task    `gorm:"foreignKey:CreatedByID" json:"-"`
}
