package repository

import (
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/database"
	"github.com/Lparksi/vikunja-1/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination. The project id set
// must already be resolved by the caller; an empty set short-circuits to an
// empty result so no query ever runs unrestricted.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	if len(filter.ProjectIDs) == 0 {
		return []models.Task{}, 0, nil
	}

	query := r.db.Model(&models.Task{}).Where("tasks.project_id IN ?", filter.ProjectIDs)

	if filter.Done != nil {
		query = query.Where("tasks.done = ?", *filter.Done)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderByPriority {
		listQuery = listQuery.Order("tasks.priority DESC, tasks.created_at DESC")
	} else {
		listQuery = listQuery.Order("tasks.position, tasks.created_at")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PerPage))

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task and its label links in one transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.LabelTask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AttachLabel links a label to a task
func (r *GormTaskRepository) AttachLabel(link *models.LabelTask) error {
	return r.db.Create(link).Error
}

// DetachLabel removes the link between a task and a label
func (r *GormTaskRepository) DetachLabel(taskID, labelID uint64) error {
	return r.db.Where("task_id = ? AND label_id = ?", taskID, labelID).
		Delete(&models.LabelTask{}).Error
}

// FindLabelLink finds the link row for a (task, label) pair
func (r *GormTaskRepository) FindLabelLink(taskID, labelID uint64) (*models.LabelTask, error) {
	var link models.LabelTask
	if err := r.db.Where("task_id = ? AND label_id = ?", taskID, labelID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLabels lists the labels attached to a task
func (r *GormTaskRepository) ListLabels(taskID uint64) ([]models.Label, error) {
	var labels []models.Label
	err := r.db.Model(&models.Label{}).
		Joins("JOIN label_tasks ON label_tasks.label_id = labels.id").
		Where("label_tasks.task_id = ?", taskID).
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}
