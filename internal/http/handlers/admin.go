package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type AdminHandler struct {
	store       store.ContentStore
	authService services.AuthService
	log         *logger.Logger
}

func NewAdminHandler(contentStore store.ContentStore, authService services.AuthService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		store:       contentStore,
		authService: authService,
		log:         log.With("handler", "AdminHandler"),
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("email and password are required"))
		return
	}
	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"token":     token,
		"expiresIn": int(h.authService.TokenTTL().Seconds()),
	})
}

// GetCredentials returns the admin account without the password hash; the
// json:"-" tag on the domain struct keeps it out of the payload.
func (h *AdminHandler) GetCredentials(c *gin.Context) {
	creds, err := h.store.GetAdminCredentials(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, creds)
}

func (h *AdminHandler) UpdateCredentials(c *gin.Context) {
	var req struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("email is not valid"))
		return
	}
	if req.Password != nil && len(*req.Password) < 8 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("password must be at least 8 characters"))
		return
	}
	creds, err := h.authService.UpdateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, creds)
}

// Backup streams the full store state, id counters included, so a restore
// continues id allocation where the source left off.
func (h *AdminHandler) Backup(c *gin.Context) {
	snap, err := h.store.ExportSnapshot(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="emberlane-backup.json"`)
	response.RespondOK(c, snap)
}

func (h *AdminHandler) Restore(c *gin.Context) {
	var snap store.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if snap.Counters == nil {
		snap.Counters = map[string]int{}
	}
	if err := h.store.ImportSnapshot(c.Request.Context(), &snap); err != nil {
		respondStoreError(c, err)
		return
	}
	h.log.Info("Store state restored from backup")
	response.RespondOK(c, gin.H{"ok": true})
}
