package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type HeroHandler struct {
	store store.ContentStore
}

func NewHeroHandler(contentStore store.ContentStore) *HeroHandler {
	return &HeroHandler{store: contentStore}
}

func (h *HeroHandler) Get(c *gin.Context) {
	hero, err := h.store.GetHeroData(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, hero)
}

// Update merges the submitted fields into the hero singleton; absent fields
// keep their stored values.
func (h *HeroHandler) Update(c *gin.Context) {
	var req struct {
		Title1      *string `json:"title1"`
		Title2      *string `json:"title2"`
		Description *string `json:"description"`
		ImageURL    *string `json:"imageUrl"`
		ImageAlt    *string `json:"imageAlt"`
		ShowButtons *bool   `json:"showButtons"`
		ShowStats   *bool   `json:"showStats"`
		StatsNumber *string `json:"statsNumber"`
		StatsLabel  *string `json:"statsLabel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	hero, err := h.store.UpdateHeroData(c.Request.Context(), domain.HeroDataPatch{
		Title1:      req.Title1,
		Title2:      req.Title2,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ImageAlt:    req.ImageAlt,
		ShowButtons: req.ShowButtons,
		ShowStats:   req.ShowStats,
		StatsNumber: req.StatsNumber,
		StatsLabel:  req.StatsLabel,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, hero)
}
