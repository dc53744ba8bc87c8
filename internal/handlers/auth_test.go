package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lparksi/vikunja-1/internal/dto"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Username)
	require.True(t, response.IsAdmin, "first registered user becomes admin")

	// The second user is a regular account.
	w = env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.IsAdmin)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Same email, different username.
	w = env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RegisterShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"username": "alice",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	// The token authenticates requests.
	w = env.request(t, http.MethodGet, "/api/v1/token/test", response.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user dto.UserDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.Equal(t, "alice", user.Username)
}

func TestAuthHandler_LoginByEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"username": "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	w := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"username": "alice",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// An unknown user fails the same way.
	w = env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"username": "ghost",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/user", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/user", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
