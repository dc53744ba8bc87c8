package repository

import (
	"github.com/Lparksi/vikunja-1/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Count returns the total number of users
	Count() (int64, error)

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsernameOrEmail finds a user whose username or email matches login
	FindByUsernameOrEmail(login string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether a user with the given username
	// or email already exists
	ExistsByUsernameOrEmail(username, email string) (bool, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ListActive lists all active users
	ListActive() ([]models.User, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	IsArchived      *bool
	ParentProjectID *uint64
	Page            int
	PerPage         int
}

// ProjectRepository defines the interface for project and grant data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListAccessible lists projects the user owns or holds a grant on,
	// ordered by position then created_at
	ListAccessible(userID uint64, filter ProjectFilter) ([]models.Project, int64, error)

	// AccessibleIDs returns the ids of every project the user owns or holds
	// a grant on. Cross-project task queries filter on this materialized set.
	AccessibleIDs(userID uint64) ([]uint64, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project and its dependent rows in one transaction
	Delete(id uint64) error

	// FindGrant finds the grant row for a (project, user) pair
	FindGrant(projectID, userID uint64) (*models.ProjectUser, error)

	// ListGrants lists all grant rows on a project
	ListGrants(projectID uint64) ([]models.ProjectUser, error)

	// CreateGrant creates a grant row
	CreateGrant(grant *models.ProjectUser) error

	// UpdateGrant persists changes to a grant row
	UpdateGrant(grant *models.ProjectUser) error

	// DeleteGrant removes the grant row for a (project, user) pair
	DeleteGrant(projectID, userID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// ProjectIDs restricts results to these projects. An empty set yields an
	// empty result, never an unrestricted query.
	ProjectIDs []uint64
	Done       *bool

	// OrderByPriority selects priority DESC, created_at DESC (the
	// cross-project listing order) instead of position, created_at.
	OrderByPriority bool

	Page    int
	PerPage int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task and its label links in one transaction
	Delete(id uint64) error

	// AttachLabel links a label to a task
	AttachLabel(link *models.LabelTask) error

	// DetachLabel removes the link between a task and a label
	DetachLabel(taskID, labelID uint64) error

	// FindLabelLink finds the link row for a (task, label) pair
	FindLabelLink(taskID, labelID uint64) (*models.LabelTask, error)

	// ListLabels lists the labels attached to a task
	ListLabels(taskID uint64) ([]models.Label, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// ListForUser lists teams the user created or is a member of
	ListForUser(userID uint64) ([]models.Team, error)

	// Update persists changes to a team
	Update(team *models.Team) error

	// Delete removes a team, its members and its project grants in one
	// transaction
	Delete(id uint64) error

	// FindMember finds a specific team member
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uint64) error

	// ListMembers lists all members of a team
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// ListByCreator lists labels created by the user
	ListByCreator(userID uint64) ([]models.Label, error)

	// Update persists changes to a label
	Update(label *models.Label) error

	// Delete removes a label and its task links in one transaction
	Delete(id uint64) error
}

// ProjectViewRepository defines the interface for view and bucket data access
type ProjectViewRepository interface {
	// CreateView creates a new project view
	CreateView(view *models.ProjectView) error

	// FindViewByID finds a project view by ID
	FindViewByID(id uint64) (*models.ProjectView, error)

	// ListViews lists the views of a project ordered by position
	ListViews(projectID uint64) ([]models.ProjectView, error)

	// UpdateView persists changes to a project view
	UpdateView(view *models.ProjectView) error

	// DeleteView removes a view and its buckets in one transaction
	DeleteView(id uint64) error

	// CreateBucket creates a new bucket
	CreateBucket(bucket *models.Bucket) error

	// FindBucketByID finds a bucket by ID
	FindBucketByID(id uint64) (*models.Bucket, error)

	// ListBuckets lists the buckets of a view ordered by position
	ListBuckets(viewID uint64) ([]models.Bucket, error)

	// UpdateBucket persists changes to a bucket
	UpdateBucket(bucket *models.Bucket) error

	// DeleteBucket removes a bucket and detaches its tasks
	DeleteBucket(id uint64) error
}
