package models

import (
	"time"
)

type Project struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(250);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Identifier  string `gorm:"type:varchar(10)" json:"identifier"`

	// Hierarchy. Position orders sibling projects; ties break on created_at.
	ParentProjectID *uint64 `json:"parent_project_id"`
	Position        float64 `gorm:"default:0" json:"position"`

	// Styling
	HexColor           string  `gorm:"type:varchar(6)" json:"hex_color"`
	BackgroundFileID   *uint64 `json:"background_file_id"`
	BackgroundBlurHash string  `gorm:"type:varchar(100)" json:"background_blur_hash"`

	// Status
	IsArchived bool `gorm:"default:false" json:"is_archived"`
	IsFavorite bool `gorm:"default:false" json:"is_favorite"`

	OwnerID uint64 `gorm:"not null;index" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner         *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	ParentProject *Project `gorm:"foreignKey:ParentProjectID" json:"-"`
}

// ProjectUser grants a user an explicit right on a project. The owner never
// has a row here; ownership implies admin.
type ProjectUser struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index:idx_project_users_project_user,unique" json:"project_id"`
	UserID    uint64    `gorm:"not null;index:idx_project_users_project_user,unique" json:"user_id"`
	Right     Right     `gorm:"not null;default:0" json:"right"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}
