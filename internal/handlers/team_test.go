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

func TestTeamHandler_CRUD(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	token := env.token(t, alice)

	w := env.request(t, http.MethodPut, "/api/v1/teams", token, map[string]any{
		"name": "core",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var team models.Team
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))
	require.Equal(t, "core", team.Name)
	require.Equal(t, alice.ID, team.CreatedByID)

	path := fmt.Sprintf("/api/v1/teams/%d", team.ID)

	w = env.request(t, http.MethodPost, path, token, map[string]any{
		"description": "the core team",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))
	require.Equal(t, "core", team.Name)
	require.Equal(t, "the core team", team.Description)

	w = env.request(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamHandler_Membership(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	aliceToken := env.token(t, alice)
	bobToken := env.token(t, bob)
	carolToken := env.token(t, carol)

	team, err := env.teamService.CreateTeam(alice.ID, services.CreateTeamInput{Name: "core"})
	require.NoError(t, err)

	teamPath := fmt.Sprintf("/api/v1/teams/%d", team.ID)
	membersPath := teamPath + "/members"

	// Outsiders cannot see the team at all.
	w := env.request(t, http.MethodGet, teamPath, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The creator adds bob.
	w = env.request(t, http.MethodPut, membersPath, aliceToken, map[string]any{
		"user_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Adding him again conflicts.
	w = env.request(t, http.MethodPut, membersPath, aliceToken, map[string]any{
		"user_id": bob.ID,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Members can read the team and its roster.
	w = env.request(t, http.MethodGet, teamPath, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodGet, membersPath, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Plain members cannot manage membership.
	w = env.request(t, http.MethodPut, membersPath, bobToken, map[string]any{
		"user_id": carol.ID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// An admin member can.
	w = env.request(t, http.MethodPut, membersPath, aliceToken, map[string]any{
		"user_id": carol.ID,
		"admin":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("%s/%d", membersPath, bob.ID), carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, membersPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []dto.TeamMemberDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	require.Equal(t, carol.ID, members[0].UserID)
}

func TestTeamHandler_ListOnlyOwn(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	bobToken := env.token(t, bob)

	_, err := env.teamService.CreateTeam(alice.ID, services.CreateTeamInput{Name: "alices"})
	require.NoError(t, err)
	shared, err := env.teamService.CreateTeam(alice.ID, services.CreateTeamInput{Name: "shared"})
	require.NoError(t, err)
	_, err = env.teamService.AddMember(alice.ID, shared.ID, bob.ID, false)
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/api/v1/teams", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var teams []models.Team
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teams))
	require.Len(t, teams, 1)
	require.Equal(t, "shared", teams[0].Name)
}
