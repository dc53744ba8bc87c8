package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/config"
	"github.com/Lparksi/vikunja-1/internal/dto"
)

// Version is the reported application version. Overridden at build time via
// -ldflags.
var Version = "dev"

// InfoHandler serves the unauthenticated instance metadata.
type InfoHandler struct {
	cfg *config.Config
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(cfg *config.Config) *InfoHandler {
	return &InfoHandler{cfg: cfg}
}

// Info describes the instance and its enabled features.
func (h *InfoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InfoResponse{
		Version:                Version,
		FrontendURL:            h.cfg.ServicePublicURL,
		Motd:                   h.cfg.ServiceMotd,
		LinkSharingEnabled:     h.cfg.EnableLinkSharing,
		MaxFileSize:            h.cfg.FilesMaxSize,
		RegistrationEnabled:    h.cfg.EnableRegistration,
		AvailableMigrators:     []string{},
		TaskAttachmentsEnabled: h.cfg.EnableTaskAttachments,
		TotpEnabled:            h.cfg.EnableTOTP,
		EmailRemindersEnabled:  h.cfg.EnableEmailReminders,
		UserDeletionEnabled:    h.cfg.EnableUserDeletion,
		TaskCommentsEnabled:    h.cfg.EnableTaskComments,
		WebhooksEnabled:        h.cfg.WebhooksEnabled,
		PublicTeamsEnabled:     h.cfg.EnablePublicTeams,
		CaldavEnabled:          h.cfg.EnableCaldav,
	})
}

// Health reports process liveness.
func (h *InfoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
