package repository

import (
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
)

// GormProjectViewRepository is a GORM implementation of ProjectViewRepository
type GormProjectViewRepository struct {
	db *gorm.DB
}

// NewProjectViewRepository creates a new ProjectViewRepository
func NewProjectViewRepository(db *gorm.DB) ProjectViewRepository {
	return &GormProjectViewRepository{db: db}
}

// CreateView creates a new project view
func (r *GormProjectViewRepository) CreateView(view *models.ProjectView) error {
	return r.db.Create(view).Error
}

// FindViewByID finds a project view by ID
func (r *GormProjectViewRepository) FindViewByID(id uint64) (*models.ProjectView, error) {
	var view models.ProjectView
	if err := r.db.First(&view, id).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// ListViews lists the views of a project ordered by position
func (r *GormProjectViewRepository) ListViews(projectID uint64) ([]models.ProjectView, error) {
	var views []models.ProjectView
	if err := r.db.Where("project_id = ?", projectID).
		Order("position, created_at").
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// UpdateView persists changes to a project view
func (r *GormProjectViewRepository) UpdateView(view *models.ProjectView) error {
	return r.db.Save(view).Error
}

// DeleteView removes a view and its buckets in one transaction
func (r *GormProjectViewRepository) DeleteView(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		bucketSubQuery := tx.Model(&models.Bucket{}).Select("id").Where("project_view_id = ?", id)
		if err := tx.Model(&models.Task{}).
			Where("bucket_id IN (?)", bucketSubQuery).
			Update("bucket_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("project_view_id = ?", id).Delete(&models.Bucket{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.ProjectView{}, id).Error
	})
}

// CreateBucket creates a new bucket
func (r *GormProjectViewRepository) CreateBucket(bucket *models.Bucket) error {
	return r.db.Create(bucket).Error
}

// FindBucketByID finds a bucket by ID
func (r *GormProjectViewRepository) FindBucketByID(id uint64) (*models.Bucket, error) {
	var bucket models.Bucket
	if err := r.db.First(&bucket, id).Error; err != nil {
		return nil, err
	}
	return &bucket, nil
}

// ListBuckets lists the buckets of a view ordered by position
func (r *GormProjectViewRepository) ListBuckets(viewID uint64) ([]models.Bucket, error) {
	var buckets []models.Bucket
	if err := r.db.Where("project_view_id = ?", viewID).
		Order("position, created_at").
		Find(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}

// UpdateBucket persists changes to a bucket
func (r *GormProjectViewRepository) UpdateBucket(bucket *models.Bucket) error {
	return r.db.Save(bucket).Error
}

// DeleteBucket removes a bucket and detaches its tasks
func (r *GormProjectViewRepository) DeleteBucket(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("bucket_id = ?", id).
			Update("bucket_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Bucket{}, id).Error
	})
}
