package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type WorkshopHandler struct {
	store store.ContentStore
}

func NewWorkshopHandler(contentStore store.ContentStore) *WorkshopHandler {
	return &WorkshopHandler{store: contentStore}
}

func (h *WorkshopHandler) ListPackages(c *gin.Context) {
	packages, err := h.store.GetWorkshopPackages(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, packages)
}

// ReplacePackages swaps the whole package list. Features stays a
// JSON-encoded string array on the wire and in storage; it only has to
// decode cleanly.
func (h *WorkshopHandler) ReplacePackages(c *gin.Context) {
	var req []domain.WorkshopPackageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	for i := range req {
		if req[i].Name == "" {
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("package %d: name is required", i))
			return
		}
		if req[i].Features == "" {
			req[i].Features = "[]"
		}
		var features []string
		if err := json.Unmarshal([]byte(req[i].Features), &features); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("package %d: features must be a JSON string array", i))
			return
		}
	}
	packages, err := h.store.ReplaceWorkshopPackages(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, packages)
}

func (h *WorkshopHandler) ListCurriculum(c *gin.Context) {
	steps, err := h.store.GetWorkshopCurriculum(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, steps)
}

func (h *WorkshopHandler) ReplaceCurriculum(c *gin.Context) {
	var req []domain.WorkshopCurriculumInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	for i, step := range req {
		if step.Title == "" {
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("step %d: title is required", i))
			return
		}
	}
	steps, err := h.store.ReplaceWorkshopCurriculum(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, steps)
}
