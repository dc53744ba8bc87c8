package handlers

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/dto"
	apierrors "github.com/Lparksi/vikunja-1/internal/errors"
	"github.com/Lparksi/vikunja-1/internal/middleware"
	"github.com/Lparksi/vikunja-1/internal/services"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// GetCurrentUser returns the authenticated user's own account.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailDTO(*user))
}

// UpdateCurrentUser applies a sparse self-update.
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateUserRequest struct {
		Name      *string `json:"name"`
		Email     *string `json:"email" binding:"omitempty,email"`
		Timezone  *string `json:"timezone"`
		WeekStart *int    `json:"week_start" binding:"omitempty,min=0,max=6"`
		Language  *string `json:"language"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Timezone:  req.Timezone,
		WeekStart: req.WeekStart,
		Language:  req.Language,
	})
	if err != nil {
		if err == services.ErrEmailTaken {
			apierrors.Conflict(c, "Email already in use")
			return
		}
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailDTO(*user))
}

// ListUsers lists active users in their public shape.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// TokenTest echoes the authenticated user, proving the token is valid.
func (h *UserHandler) TokenTest(c *gin.Context) {
	h.GetCurrentUser(c)
}

// zoneinfoDir is where the host keeps the IANA database.
const zoneinfoDir = "/usr/share/zoneinfo"

// Timezones lists the timezone names known to the host. When the zoneinfo
// database is unavailable only the fixed zones are reported.
func (h *UserHandler) Timezones(c *gin.Context) {
	zones := listTimezones()
	c.JSON(http.StatusOK, zones)
}

func listTimezones() []string {
	var zones []string
	err := filepath.WalkDir(zoneinfoDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.TrimPrefix(path, zoneinfoDir+string(os.PathSeparator))
		// Zone names start uppercase; skip the posix/right trees and
		// metadata files.
		if name == "" || name[0] < 'A' || name[0] > 'Z' || strings.Contains(name, ".") {
			return nil
		}
		zones = append(zones, name)
		return nil
	})
	if err != nil || len(zones) == 0 {
		return []string{"GMT", "UTC"}
	}
	sort.Strings(zones)
	return zones
}
