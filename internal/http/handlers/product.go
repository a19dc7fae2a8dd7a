package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type ProductHandler struct {
	store store.ContentStore
}

func NewProductHandler(contentStore store.ContentStore) *ProductHandler {
	return &ProductHandler{store: contentStore}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.store.GetProducts(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, products)
}

func (h *ProductHandler) Replace(c *gin.Context) {
	var req []domain.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	for i := range req {
		if req[i].Name == "" {
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("product %d: name is required", i))
			return
		}
		if req[i].Status == "" {
			req[i].Status = domain.ProductStatusActive
		}
		switch req[i].Status {
		case domain.ProductStatusActive, domain.ProductStatusOutOfStock, domain.ProductStatusInactive:
		default:
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("product %d: unknown status %q", i, req[i].Status))
			return
		}
	}
	products, err := h.store.ReplaceProducts(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, products)
}
