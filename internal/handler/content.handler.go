package handler

import (
	"net/http"

	"github.com/ksbmInfotechOfficial/vscct/internal/middleware"
	"github.com/ksbmInfotechOfficial/vscct/internal/provider/wordpress"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler proxies the public WordPress site. Anonymous callers get
// excerpts only; authenticated users get full post bodies.
type ContentHandler struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewContentHandler(wp *wordpress.Client, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{wp: wp, logger: logger}
}

// GetPosts handles GET /api/content/posts.
func (h *ContentHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	page := int(queryInt(r, "page", 1))
	perPage := int(queryInt(r, "limit", 10))
	category := r.URL.Query().Get("category")

	list, err := h.wp.GetPosts(r.Context(), page, perPage, category)
	if err != nil {
		h.logger.Error("fetch posts failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "Failed to load posts")
		return
	}

	if _, ok := middleware.UserFrom(r.Context()); !ok {
		for i := range list.Posts {
			lockPost(&list.Posts[i])
		}
	}

	response.JSON(w, http.StatusOK, list)
}

// GetPost handles GET /api/content/posts/{idOrSlug}.
func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.wp.GetPost(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		h.logger.Error("fetch post failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "Failed to load post")
		return
	}
	if post == nil {
		response.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	if _, ok := middleware.UserFrom(r.Context()); !ok {
		lockPost(post)
	}

	response.JSON(w, http.StatusOK, post)
}

// GetCategories handles GET /api/content/categories.
func (h *ContentHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.wp.GetCategories(r.Context())
	if err != nil {
		h.logger.Error("fetch categories failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "Failed to load categories")
		return
	}
	response.JSON(w, http.StatusOK, cats)
}

// GetEvents handles GET /api/content/events.
func (h *ContentHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	page := int(queryInt(r, "page", 1))
	perPage := int(queryInt(r, "limit", 10))
	response.JSON(w, http.StatusOK, h.wp.GetEvents(r.Context(), page, perPage))
}

// lockPost swaps the full body for the excerpt for anonymous readers.
func lockPost(p *wordpress.Post) {
	p.Content = p.Excerpt
	p.IsLocked = true
}
