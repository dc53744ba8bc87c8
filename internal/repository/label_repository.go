package repository

import (
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// ListByCreator lists labels created by the user
func (r *GormLabelRepository) ListByCreator(userID uint64) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Where("created_by_id = ?", userID).
		Order("created_at").
		Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update persists changes to a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label and its task links in one transaction
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&models.LabelTask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Label{}, id).Error
	})
}
