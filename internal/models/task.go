package models

import (
	"time"
)

// TaskRepeatMode values mirror the repeat_mode column.
const (
	TaskRepeatModeDefault         = 0
	TaskRepeatModeMonth           = 1
	TaskRepeatModeFromCurrentDate = 2
)

type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(500);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Status. done_at is set iff done is true; the transition is handled in
	// the task service, never taken from the client.
	Done   bool       `gorm:"default:false" json:"done"`
	DoneAt *time.Time `json:"done_at"`

	// Dates
	DueDate   *time.Time `json:"due_date"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Reminders (opaque serialized configuration)
	Reminders string `gorm:"type:text" json:"-"`

	// Ordering. position orders the list view, kanban_position the kanban
	// view; both break ties on created_at.
	Priority       int     `gorm:"default:0;index" json:"priority"`
	Position       float64 `gorm:"default:0" json:"position"`
	KanbanPosition float64 `gorm:"default:0" json:"kanban_position"`

	// Repeat settings
	RepeatAfter int `gorm:"default:0" json:"repeat_after"`
	RepeatMode  int `gorm:"default:0" json:"repeat_mode"`

	HexColor string `gorm:"type:varchar(6)" json:"hex_color"`

	BucketID     *uint64 `json:"bucket_id"`
	ProjectID    uint64  `gorm:"not null;index" json:"project_id"`
	CreatedByID  uint64  `gorm:"not null;index" json:"created_by_id"`
	ParentTaskID *uint64 `json:"parent_task_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project    *Project `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedBy  *User    `gorm:"foreignKey:CreatedByID" json:"-"`
	ParentTask *Task    `gorm:"foreignKey:ParentTaskID" json:"-"`
	Bucket     *Bucket  `gorm:"foreignKey:BucketID" json:"-"`
}
