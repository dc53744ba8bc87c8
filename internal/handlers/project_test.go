package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lparksi/vikunja-1/internal/dto"
	"github.com/Lparksi/vikunja-1/internal/models"
	"github.com/Lparksi/vikunja-1/internal/services"
)

func TestProjectHandler_CRUD(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	token := env.token(t, alice)

	w := env.request(t, http.MethodPut, "/api/v1/projects", token, map[string]any{
		"title":       "Groceries",
		"description": "weekly shopping",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.Equal(t, "Groceries", project.Title)
	require.Equal(t, alice.ID, project.OwnerID)

	path := fmt.Sprintf("/api/v1/projects/%d", project.ID)

	w = env.request(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, path, token, map[string]any{
		"title": "Errands",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.Equal(t, "Errands", project.Title)
	require.Equal(t, "weekly shopping", project.Description, "untouched field survives a sparse update")

	w = env.request(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// The full cross-user story: a stranger cannot see a task, a read grant makes
// it visible, and write stays denied.
func TestProjectHandler_VisibilityAndGrants(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	aliceToken := env.token(t, alice)
	bobToken := env.token(t, bob)

	project, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{Title: "P1"})
	require.NoError(t, err)
	task, err := env.taskService.CreateTask(alice.ID, project.ID, services.CreateTaskInput{Title: "T1"})
	require.NoError(t, err)

	taskPath := fmt.Sprintf("/api/v1/tasks/%d", task.ID)
	projectPath := fmt.Sprintf("/api/v1/projects/%d", project.ID)

	// Before any grant both the project and the task look absent to bob.
	w := env.request(t, http.MethodGet, taskPath, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = env.request(t, http.MethodGet, projectPath, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Alice grants bob read access.
	w = env.request(t, http.MethodPut, projectPath+"/users", aliceToken, map[string]any{
		"user_id": bob.ID,
		"right":   models.RightRead,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Now bob can read both.
	w = env.request(t, http.MethodGet, taskPath, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodGet, projectPath, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// But a write is refused outright, not hidden.
	w = env.request(t, http.MethodPost, taskPath, bobToken, map[string]any{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_WriteGrantCannotDelete(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	bobToken := env.token(t, bob)

	project, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{Title: "P1"})
	require.NoError(t, err)
	_, err = env.projectService.AddGrant(alice.ID, project.ID, bob.ID, models.RightWrite)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/v1/projects/%d", project.ID)

	// Write level lets bob update...
	w := env.request(t, http.MethodPost, path, bobToken, map[string]any{
		"title": "renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// ...but deletion requires admin.
	w = env.request(t, http.MethodDelete, path, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_GrantManagement(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	aliceToken := env.token(t, alice)

	project, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{Title: "P1"})
	require.NoError(t, err)

	base := fmt.Sprintf("/api/v1/projects/%d/users", project.ID)

	w := env.request(t, http.MethodPut, base, aliceToken, map[string]any{
		"user_id": bob.ID,
		"right":   models.RightRead,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate grants conflict.
	w = env.request(t, http.MethodPut, base, aliceToken, map[string]any{
		"user_id": bob.ID,
		"right":   models.RightWrite,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The owner never gets a grant row.
	w = env.request(t, http.MethodPut, base, aliceToken, map[string]any{
		"user_id": alice.ID,
		"right":   models.RightRead,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Raise bob to write.
	w = env.request(t, http.MethodPost, fmt.Sprintf("%s/%d", base, bob.ID), aliceToken, map[string]any{
		"right": models.RightWrite,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var grant models.ProjectUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grant))
	require.Equal(t, models.RightWrite, grant.Right)

	w = env.request(t, http.MethodGet, base, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grants []models.ProjectUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grants))
	require.Len(t, grants, 1)

	// Revoke and confirm the project disappears for bob.
	w = env.request(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	bobToken := env.token(t, bob)
	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", project.ID), bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_ListPagination(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	token := env.token(t, alice)

	for i := 0; i < 5; i++ {
		_, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{
			Title:    fmt.Sprintf("project-%d", i),
			Position: float64(i),
		})
		require.NoError(t, err)
	}

	w := env.request(t, http.MethodGet, "/api/v1/projects?page=1&per_page=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page1 dto.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page1))
	require.Len(t, page1.Projects, 3)
	require.Equal(t, int64(5), page1.Total)

	w = env.request(t, http.MethodGet, "/api/v1/projects?page=2&per_page=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page2 dto.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page2))
	require.Len(t, page2.Projects, 2)

	// The pages are disjoint.
	seen := map[uint64]bool{}
	for _, p := range page1.Projects {
		seen[p.ID] = true
	}
	for _, p := range page2.Projects {
		require.False(t, seen[p.ID], "project %d appears on both pages", p.ID)
	}
}

func TestProjectHandler_SelfParentRejected(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	token := env.token(t, alice)

	project, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{Title: "P1"})
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d", project.ID), token, map[string]any{
		"parent_project_id": project.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_ClearParentProject(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	token := env.token(t, alice)

	parent, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{Title: "parent"})
	require.NoError(t, err)
	child, err := env.projectService.CreateProject(alice.ID, services.CreateProjectInput{
		Title:           "child",
		ParentProjectID: &parent.ID,
	})
	require.NoError(t, err)

	// An explicit null detaches the child; an absent field would not.
	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d", child.ID), token, map[string]any{
		"parent_project_id": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Nil(t, updated.ParentProjectID)
}
