package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lparksi/vikunja-1/internal/auth"
	"github.com/Lparksi/vikunja-1/internal/database"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/repository"
	"github.com/Lparksi/vikunja-1/internal/services"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenService

	authService    *services.AuthService
	projectService *services.ProjectService
	taskService    *services.TaskService
	labelService   *services.LabelService
	teamService    *services.TeamService
	viewService    *services.ProjectViewService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUser{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamProject{},
		&models.Task{},
		&models.Label{},
		&models.LabelTask{},
		&models.ProjectView{},
		&models.Bucket{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	viewRepo := repository.NewProjectViewRepository(db)

	tokens := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	perms := services.NewPermissionService(projectRepo, taskRepo, teamRepo)

	env := &testEnv{
		db:             db,
		tokens:         tokens,
		authService:    services.NewAuthService(userRepo, tokens, true),
		projectService: services.NewProjectService(projectRepo, userRepo, perms),
		taskService:    services.NewTaskService(taskRepo, labelRepo, perms),
		labelService:   services.NewLabelService(labelRepo),
		teamService:    services.NewTeamService(teamRepo, userRepo, perms),
		viewService:    services.NewProjectViewService(viewRepo, perms),
	}

	authHandler := NewAuthHandler(env.authService)
	userHandler := NewUserHandler(env.authService, services.NewUserService(userRepo))
	projectHandler := NewProjectHandler(env.projectService)
	taskHandler := NewTaskHandler(env.taskService)
	labelHandler := NewLabelHandler(env.labelService)
	teamHandler := NewTeamHandler(env.teamService)
	viewHandler := NewProjectViewHandler(env.viewService)

	r := gin.New()
	api := r.Group("/api/v1")

	api.POST("/login", authHandler.Login)
	api.POST("/register", authHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokens))

	authed.GET("/token/test", userHandler.TokenTest)
	authed.GET("/user", userHandler.GetCurrentUser)
	authed.POST("/user", userHandler.UpdateCurrentUser)
	authed.GET("/users", userHandler.ListUsers)

	authed.GET("/projects", projectHandler.List)
	authed.PUT("/projects", projectHandler.Create)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.POST("/projects/:id", projectHandler.Update)
	authed.DELETE("/projects/:id", projectHandler.Delete)
	authed.GET("/projects/:id/users", projectHandler.ListUsers)
	authed.PUT("/projects/:id/users", projectHandler.AddUser)
	authed.POST("/projects/:id/users/:userID", projectHandler.UpdateUser)
	authed.DELETE("/projects/:id/users/:userID", projectHandler.RemoveUser)
	authed.GET("/projects/:id/tasks", taskHandler.ListProjectTasks)
	authed.PUT("/projects/:id/tasks", taskHandler.Create)
	authed.GET("/projects/:id/views", viewHandler.ListViews)
	authed.PUT("/projects/:id/views", viewHandler.CreateView)
	authed.POST("/projects/:id/views/:viewID", viewHandler.UpdateView)
	authed.DELETE("/projects/:id/views/:viewID", viewHandler.DeleteView)
	authed.GET("/projects/:id/views/:viewID/buckets", viewHandler.ListBuckets)
	authed.PUT("/projects/:id/views/:viewID/buckets", viewHandler.CreateBucket)
	authed.POST("/projects/:id/views/:viewID/buckets/:bucketID", viewHandler.UpdateBucket)
	authed.DELETE("/projects/:id/views/:viewID/buckets/:bucketID", viewHandler.DeleteBucket)

	authed.GET("/tasks/all", taskHandler.ListAll)
	authed.GET("/tasks/:id", taskHandler.Get)
	authed.POST("/tasks/:id", taskHandler.Update)
	authed.DELETE("/tasks/:id", taskHandler.Delete)
	authed.GET("/tasks/:id/labels", taskHandler.ListLabels)
	authed.PUT("/tasks/:id/labels", taskHandler.AttachLabel)
	authed.DELETE("/tasks/:id/labels/:labelID", taskHandler.DetachLabel)

	authed.GET("/labels", labelHandler.List)
	authed.PUT("/labels", labelHandler.Create)
	authed.GET("/labels/:id", labelHandler.Get)
	authed.POST("/labels/:id", labelHandler.Update)
	authed.DELETE("/labels/:id", labelHandler.Delete)

	authed.GET("/teams", teamHandler.List)
	authed.PUT("/teams", teamHandler.Create)
	authed.GET("/teams/:id", teamHandler.Get)
	authed.POST("/teams/:id", teamHandler.Update)
	authed.DELETE("/teams/:id", teamHandler.Delete)
	authed.GET("/teams/:id/members", teamHandler.ListMembers)
	authed.PUT("/teams/:id/members", teamHandler.AddMember)
	authed.DELETE("/teams/:id/members/:userID", teamHandler.RemoveMember)

	env.router = r
	return env
}

// register creates a user through the service and returns it.
func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.authService.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// token issues a bearer token for the user.
func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.Issue(user, false)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router.
func (e *testEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
