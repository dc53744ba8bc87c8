package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

var (
	ErrTaskTitleRequired    = errors.New("task title is required")
	ErrTaskOwnParent        = errors.New("a task cannot be its own parent")
	ErrLabelAlreadyAttached = errors.New("label is already attached to this task")
)

// TaskService handles task business logic. Task permissions always derive
// from the owning project.
type TaskService struct {
	taskRepo  repository.TaskRepository
	labelRepo repository.LabelRepository
	perms     *PermissionService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, labelRepo repository.LabelRepository, perms *PermissionService) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		labelRepo: labelRepo,
		perms:     perms,
	}
}

// ListAllTasksInput represents filters for the cross-project task listing.
type ListAllTasksInput struct {
	Done    *bool
	Page    int
	PerPage int
}

// ListAllTasks returns tasks across every project the user can read,
// ordered by priority descending then created_at descending. The accessible
// project id set is materialized first and the task table filtered against
// it.
func (s *TaskService) ListAllTasks(userID uint64, input ListAllTasksInput) ([]models.Task, int64, error) {
	projectIDs, err := s.perms.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, 0, err
	}

	if len(projectIDs) == 0 {
		return []models.Task{}, 0, nil
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		ProjectIDs:      projectIDs,
		Done:            input.Done,
		OrderByPriority: true,
		Page:            input.Page,
		PerPage:         input.PerPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// ListProjectTasksInput represents filters for the per-project task listing.
type ListProjectTasksInput struct {
	Done    *bool
	Page    int
	PerPage int
}

// ListProjectTasks returns a project's tasks ordered by position then
// created_at; requires read access.
func (s *TaskService) ListProjectTasks(userID, projectID uint64, input ListProjectTasksInput) ([]models.Task, int64, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightRead); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		ProjectIDs: []uint64{projectID},
		Done:       input.Done,
		Page:       input.Page,
		PerPage:    input.PerPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title        string
	Description  string
	Done         bool
	DueDate      *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	Priority     int
	Position     float64
	RepeatAfter  int
	RepeatMode   int
	HexColor     string
	BucketID     *uint64
	ParentTaskID *uint64
}

// CreateTask creates a task in a project; requires write access.
func (s *TaskService) CreateTask(userID, projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.perms.RequireProjectRight(userID, projectID, models.RightWrite); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Done:         input.Done,
		DueDate:      input.DueDate,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Priority:     input.Priority,
		Position:     input.Position,
		RepeatAfter:  input.RepeatAfter,
		RepeatMode:   input.RepeatMode,
		HexColor:     input.HexColor,
		BucketID:     input.BucketID,
		ProjectID:    projectID,
		CreatedByID:  userID,
		ParentTaskID: input.ParentTaskID,
	}
	if task.Done {
		now := time.Now()
		task.DoneAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task the user can read.
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	return s.perms.RequireTaskRight(userID, taskID, models.RightRead)
}

// UpdateTaskInput carries a sparse task update. Nil means untouched; the
// Clear flags distinguish an explicit null from an absent field.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Done            *bool
	DueDate         *time.Time
	ClearDueDate    bool
	StartDate       *time.Time
	ClearStartDate  bool
	EndDate         *time.Time
	ClearEndDate    bool
	Priority        *int
	Position        *float64
	KanbanPosition  *float64
	RepeatAfter     *int
	RepeatMode      *int
	HexColor        *string
	BucketID        *uint64
	ClearBucket     bool
	ParentTaskID    *uint64
	ClearParentTask bool
}

// UpdateTask applies a sparse update; requires write access on the owning
// project. The done transition manages done_at: false to true stamps it,
// true to false clears it.
func (s *TaskService) UpdateTask(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.perms.RequireTaskRight(userID, taskID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Done != nil && *input.Done != task.Done {
		task.Done = *input.Done
		if task.Done {
			now := time.Now()
			task.DoneAt = &now
		} else {
			task.DoneAt = nil
		}
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearStartDate {
		task.StartDate = nil
	} else if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.ClearEndDate {
		task.EndDate = nil
	} else if input.EndDate != nil {
		task.EndDate = input.EndDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Position != nil {
		task.Position = *input.Position
	}
	if input.KanbanPosition != nil {
		task.KanbanPosition = *input.KanbanPosition
	}
	if input.RepeatAfter != nil {
		task.RepeatAfter = *input.RepeatAfter
	}
	if input.RepeatMode != nil {
		task.RepeatMode = *input.RepeatMode
	}
	if input.HexColor != nil {
		task.HexColor = *input.HexColor
	}
	if input.ClearBucket {
		task.BucketID = nil
	} else if input.BucketID != nil {
		task.BucketID = input.BucketID
	}
	if input.ClearParentTask {
		task.ParentTaskID = nil
	} else if input.ParentTaskID != nil {
		if *input.ParentTaskID == taskID {
			return nil, ErrTaskOwnParent
		}
		task.ParentTaskID = input.ParentTaskID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task; requires write access on the owning project.
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	task, err := s.perms.RequireTaskRight(userID, taskID, models.RightWrite)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListTaskLabels lists the labels on a task; requires read access.
func (s *TaskService) ListTaskLabels(userID, taskID uint64) ([]models.Label, error) {
	task, err := s.perms.RequireTaskRight(userID, taskID, models.RightRead)
	if err != nil {
		return nil, err
	}

	labels, err := s.taskRepo.ListLabels(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task labels: %w", err)
	}

	return labels, nil
}

// AttachLabel links one of the user's labels to a task; requires write
// access on the task's project and ownership of the label.
func (s *TaskService) AttachLabel(userID, taskID, labelID uint64) (*models.LabelTask, error) {
	task, err := s.perms.RequireTaskRight(userID, taskID, models.RightWrite)
	if err != nil {
		return nil, err
	}

	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	if label.CreatedByID != userID {
		return nil, ErrLabelNotFound
	}

	if _, err := s.taskRepo.FindLabelLink(taskID, labelID); err == nil {
		return nil, ErrLabelAlreadyAttached
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check label link: %w", err)
	}

	link := &models.LabelTask{
		TaskID:  task.ID,
		LabelID: labelID,
	}

	if err := s.taskRepo.AttachLabel(link); err != nil {
		return nil, fmt.Errorf("failed to attach label: %w", err)
	}

	return link, nil
}

// DetachLabel removes a label from a task; requires write access.
func (s *TaskService) DetachLabel(userID, taskID, labelID uint64) error {
	if _, err := s.perms.RequireTaskRight(userID, taskID, models.RightWrite); err != nil {
		return err
	}

	if _, err := s.taskRepo.FindLabelLink(taskID, labelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find label link: %w", err)
	}

	if err := s.taskRepo.DetachLabel(taskID, labelID); err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}

	return nil
}
