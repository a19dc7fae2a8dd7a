package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type GalleryHandler struct {
	store store.ContentStore
}

func NewGalleryHandler(contentStore store.ContentStore) *GalleryHandler {
	return &GalleryHandler{store: contentStore}
}

func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.store.GetGalleryItems(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, items)
}

func (h *GalleryHandler) ListHighlighted(c *gin.Context) {
	items, err := h.store.GetHighlightedGalleryItems(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, items)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.store.GetGalleryItemByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, item)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req struct {
		Title         string  `json:"title"`
		Description   *string `json:"description"`
		ImageURL      string  `json:"imageUrl"`
		IsHighlighted bool    `json:"isHighlighted"`
		Category      string  `json:"category"`
		Order         int     `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Title == "" || req.ImageURL == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("title and imageUrl are required"))
		return
	}
	item, err := h.store.CreateGalleryItem(c.Request.Context(), domain.NewGalleryItem{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsHighlighted: req.IsHighlighted,
		Category:      req.Category,
		Order:         req.Order,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondCreated(c, item)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		ImageURL      *string `json:"imageUrl"`
		IsHighlighted *bool   `json:"isHighlighted"`
		Category      *string `json:"category"`
		Order         *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.store.UpdateGalleryItem(c.Request.Context(), id, domain.GalleryItemPatch{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsHighlighted: req.IsHighlighted,
		Category:      req.Category,
		Order:         req.Order,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.store.DeleteGalleryItem(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("gallery item %d not found", id))
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
