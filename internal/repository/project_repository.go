package repository

import (
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/database"
	"github.com/Lparksi/vikunja-1/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// accessibleScope restricts a project query to rows the user owns or holds a
// grant on. Team grants are not consulted here.
func (r *GormProjectRepository) accessibleScope(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		grantSubQuery := r.db.Model(&models.ProjectUser{}).
			Select("project_id").
			Where("user_id = ?", userID)
		return db.Where("projects.owner_id = ? OR projects.id IN (?)", userID, grantSubQuery)
	}
}

// ListAccessible lists projects the user owns or holds a grant on
func (r *GormProjectRepository) ListAccessible(userID uint64, filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Scopes(r.accessibleScope(userID))

	if filter.IsArchived != nil {
		query = query.Where("projects.is_archived = ?", *filter.IsArchived)
	}
	if filter.ParentProjectID != nil {
		query = query.Where("projects.parent_project_id = ?", *filter.ParentProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.position, projects.created_at").
		Scopes(database.Paginate(filter.Page, filter.PerPage))

	var projects []models.Project
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// AccessibleIDs returns the ids of every project the user owns or holds a
// grant on
func (r *GormProjectRepository) AccessibleIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Project{}).
		Scopes(r.accessibleScope(userID)).
		Pluck("projects.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update persists changes to a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and its dependent rows in one transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskSubQuery := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskSubQuery).Delete(&models.LabelTask{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Bucket{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectView{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.TeamProject{}).Error; err != nil {
			return err
		}

		// Orphaned children become root projects.
		if err := tx.Model(&models.Project{}).
			Where("parent_project_id = ?", id).
			Update("parent_project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// FindGrant finds the grant row for a (project, user) pair
func (r *GormProjectRepository) FindGrant(projectID, userID uint64) (*models.ProjectUser, error) {
	var grant models.ProjectUser
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// ListGrants lists all grant rows on a project
func (r *GormProjectRepository) ListGrants(projectID uint64) ([]models.ProjectUser, error) {
	var grants []models.ProjectUser
	if err := r.db.Where("project_id = ?", projectID).Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

// CreateGrant creates a grant row
func (r *GormProjectRepository) CreateGrant(grant *models.ProjectUser) error {
	return r.db.Create(grant).Error
}

// UpdateGrant persists changes to a grant row
func (r *GormProjectRepository) UpdateGrant(grant *models.ProjectUser) error {
	return r.db.Save(grant).Error
}

// DeleteGrant removes the grant row for a (project, user) pair
func (r *GormProjectRepository) DeleteGrant(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectUser{}).Error
}
