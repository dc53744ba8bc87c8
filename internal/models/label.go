package models

import (
	"time"
)

type Label struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(250);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	HexColor    string `gorm:"type:varchar(6)" json:"hex_color"`
	CreatedByID uint64 `gorm:"not null;index" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"-"`
}

// LabelTask attaches a label to a task.
type LabelTask struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index:idx_label_tasks_task_label,unique" json:"task_id"`
	LabelID   uint64    `gorm:"not null;index:idx_label_tasks_task_label,unique" json:"label_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task  *Task  `gorm:"foreignKey:TaskID" json:"-"`
	Label *Label `gorm:"foreignKey:LabelID" json:"-"`
}
