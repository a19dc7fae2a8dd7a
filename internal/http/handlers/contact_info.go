package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type ContactInfoHandler struct {
	store store.ContentStore
}

func NewContactInfoHandler(contentStore store.ContentStore) *ContactInfoHandler {
	return &ContactInfoHandler{store: contentStore}
}

func (h *ContactInfoHandler) Get(c *gin.Context) {
	info, err := h.store.GetContactInfo(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, info)
}

func (h *ContactInfoHandler) Update(c *gin.Context) {
	var req struct {
		Phone     *string `json:"phone"`
		WhatsApp  *string `json:"whatsapp"`
		Email     *string `json:"email"`
		Website   *string `json:"website"`
		Address   *string `json:"address"`
		MapEmbed  *string `json:"mapEmbed"`
		Instagram *string `json:"instagram"`
		Facebook  *string `json:"facebook"`
		TikTok    *string `json:"tiktok"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	info, err := h.store.UpdateContactInfo(c.Request.Context(), domain.ContactInfoPatch{
		Phone:     req.Phone,
		WhatsApp:  req.WhatsApp,
		Email:     req.Email,
		Website:   req.Website,
		Address:   req.Address,
		MapEmbed:  req.MapEmbed,
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		TikTok:    req.TikTok,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, info)
}
