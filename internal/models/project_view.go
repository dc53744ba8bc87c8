package models

import (
	"time"
)

// ProjectViewKind values mirror the view_kind column.
const (
	ProjectViewKindList   = 0
	ProjectViewKindGantt  = 1
	ProjectViewKindTable  = 2
	ProjectViewKindKanban = 3
)

// ProjectView is a named presentation of a project's tasks. Filter and
// bucket configuration are stored as opaque serialized text.
type ProjectView struct {
	ID       uint64  `gorm:"primarykey" json:"id"`
	Title    string  `gorm:"type:varchar(250);not null" json:"title"`
	ViewKind int     `gorm:"default:0" json:"view_kind"` // 0=list, 1=gantt, 2=table, 3=kanban
	Position float64 `gorm:"default:0" json:"position"`

	Filter              string `gorm:"type:text" json:"filter"`
	BucketConfiguration string `gorm:"type:text" json:"bucket_configuration"`

	ProjectID uint64 `gorm:"not null;index" json:"project_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// Bucket is a kanban column grouping tasks within a project view. Limit
// caps the task count; 0 means unlimited.
type Bucket struct {
	ID       uint64  `gorm:"primarykey" json:"id"`
	Title    string  `gorm:"type:varchar(250);not null" json:"title"`
	Position float64 `gorm:"default:0" json:"position"`
	Limit    int     `gorm:"default:0" json:"limit"`

	ProjectID     uint64 `gorm:"not null;index" json:"project_id"`
	ProjectViewID uint64 `gorm:"not null;index" json:"project_view_id"`
	CreatedByID   uint64 `gorm:"not null" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"-"`
	ProjectView *ProjectView `gorm:"foreignKey:ProjectViewID" json:"-"`
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID" json:"-"`
}
