package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type ContactHandler struct {
	store    store.ContentStore
	notifier services.Notifier
	log      *logger.Logger
}

func NewContactHandler(contentStore store.ContentStore, notifier services.Notifier, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		store:    contentStore,
		notifier: notifier,
		log:      log.With("handler", "ContactHandler"),
	}
}

// Create stores a visitor submission and kicks off the email notification in
// the background. The submission succeeds even when the email cannot be
// sent; notification problems never surface to the visitor.
func (h *ContactHandler) Create(c *gin.Context) {
	var req struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   *string `json:"phone"`
		Subject string  `json:"subject"`
		Message string  `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("name, email, subject and message are required"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("email is not valid"))
		return
	}

	contact, err := h.store.CreateContact(c.Request.Context(), domain.NewContact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if h.notifier != nil {
		// The request context dies with the response; the send gets its own
		// deadline.
		go func(contact *domain.Contact) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			adminStatus := h.notifier.NotifyAdmin(ctx, contact)
			replyStatus := h.notifier.AutoReply(ctx, contact)
			h.log.Debug("Contact emails finished",
				"contact_id", contact.ID, "admin", adminStatus, "reply", replyStatus)
		}(contact)
	}

	response.RespondCreated(c, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.store.GetContacts(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, contacts)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.store.DeleteContact(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("contact %d not found", id))
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
