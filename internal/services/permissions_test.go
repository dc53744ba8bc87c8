package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
)

func setupPermissionTestDB(t *testing.T) (*gorm.DB, *PermissionService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUser{},
		&models.Task{},
		&models.Team{},
		&models.TeamMember{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	perms := NewPermissionService(
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		repository.NewTeamRepository(db),
	)

	return db, perms
}

func TestPermissionService_OwnerHasAdmin(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	owner := models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	project := models.Project{Title: "P1", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)

	right, _, err := perms.ProjectRight(owner.ID, project.ID)
	require.NoError(t, err)
	require.Equal(t, models.RightAdmin, right)
}

func TestPermissionService_StrangerSeesNothing(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	owner := models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	stranger := models.User{Username: "stranger", Email: "stranger@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&stranger).Error)
	project := models.Project{Title: "P1", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)

	// Missing access and a missing project report the same error.
	_, err := perms.RequireProjectRight(stranger.ID, project.ID, models.RightRead)
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = perms.RequireProjectRight(stranger.ID, 99999, models.RightRead)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestPermissionService_GrantLevels(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	owner := models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	reader := models.User{Username: "reader", Email: "reader@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&reader).Error)
	project := models.Project{Title: "P1", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.ProjectUser{
		ProjectID: project.ID,
		UserID:    reader.ID,
		Right:     models.RightRead,
	}).Error)

	_, err := perms.RequireProjectRight(reader.ID, project.ID, models.RightRead)
	require.NoError(t, err)

	// Readable but not writable: this is the one case that surfaces as a
	// permission failure rather than a missing resource.
	_, err = perms.RequireProjectRight(reader.ID, project.ID, models.RightWrite)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = perms.RequireProjectRight(reader.ID, project.ID, models.RightAdmin)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPermissionService_AccessibleProjectIDs(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	owner := models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	other := models.User{Username: "other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	owned := models.Project{Title: "owned", OwnerID: owner.ID}
	granted := models.Project{Title: "granted", OwnerID: other.ID}
	hidden := models.Project{Title: "hidden", OwnerID: other.ID}
	require.NoError(t, db.Create(&owned).Error)
	require.NoError(t, db.Create(&granted).Error)
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Create(&models.ProjectUser{
		ProjectID: granted.ID,
		UserID:    owner.ID,
		Right:     models.RightRead,
	}).Error)

	ids, err := perms.AccessibleProjectIDs(owner.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{owned.ID, granted.ID}, ids)
}

func TestPermissionService_TaskRightDerivesFromProject(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	owner := models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	stranger := models.User{Username: "stranger", Email: "stranger@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&stranger).Error)
	project := models.Project{Title: "P1", OwnerID: owner.ID}
	require.NoError(t, db.Create(&project).Error)
	task := models.Task{Title: "T1", ProjectID: project.ID, CreatedByID: owner.ID}
	require.NoError(t, db.Create(&task).Error)

	got, err := perms.RequireTaskRight(owner.ID, task.ID, models.RightWrite)
	require.NoError(t, err)
	require.Equal(t, task.ID, got.ID)

	// An invisible project makes the task report missing, not forbidden.
	_, err = perms.RequireTaskRight(stranger.ID, task.ID, models.RightRead)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestPermissionService_TeamRights(t *testing.T) {
	db, perms := setupPermissionTestDB(t)

	creator := models.User{Username: "creator", Email: "creator@example.com", PasswordHash: "x"}
	member := models.User{Username: "member", Email: "member@example.com", PasswordHash: "x"}
	adminMember := models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "x"}
	outsider := models.User{Username: "outsider", Email: "outsider@example.com", PasswordHash: "x"}
	for _, u := range []*models.User{&creator, &member, &adminMember, &outsider} {
		require.NoError(t, db.Create(u).Error)
	}

	team := models.Team{Name: "core", CreatedByID: creator.ID}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: member.ID}).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: adminMember.ID, Admin: true}).Error)

	right, _, err := perms.TeamRight(creator.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, models.RightAdmin, right)

	right, _, err = perms.TeamRight(adminMember.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, models.RightAdmin, right)

	right, _, err = perms.TeamRight(member.ID, team.ID)
	require.NoError(t, err)
	require.Equal(t, models.RightRead, right)

	_, err = perms.RequireTeamRight(outsider.ID, team.ID, models.RightRead)
	require.ErrorIs(t, err, ErrTeamNotFound)

	_, err = perms.RequireTeamRight(member.ID, team.ID, models.RightAdmin)
	require.ErrorIs(t, err, ErrPermissionDenied)
}
