package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/store"
)

type BlogHandler struct {
	store store.ContentStore
}

func NewBlogHandler(contentStore store.ContentStore) *BlogHandler {
	return &BlogHandler{store: contentStore}
}

func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.store.GetBlogPosts(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if c.Query("featured") == "true" {
		featured := make([]domain.BlogPost, 0, len(posts))
		for _, p := range posts {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		posts = featured
	}
	response.RespondOK(c, posts)
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := h.store.GetBlogPostByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, post)
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.store.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, post)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Excerpt  string `json:"excerpt"`
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl"`
		Featured bool   `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Title == "" || req.Slug == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("title and slug are required"))
		return
	}
	post, err := h.store.CreateBlogPost(c.Request.Context(), domain.NewBlogPost{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Featured: req.Featured,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondCreated(c, post)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Title    *string `json:"title"`
		Slug     *string `json:"slug"`
		Excerpt  *string `json:"excerpt"`
		Content  *string `json:"content"`
		ImageURL *string `json:"imageUrl"`
		Featured *bool   `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	post, err := h.store.UpdateBlogPost(c.Request.Context(), id, domain.BlogPostPatch{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Featured: req.Featured,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.store.DeleteBlogPost(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("blog post %d not found", id))
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
