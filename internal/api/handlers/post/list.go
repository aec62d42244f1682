package post

import (
	"net/http"
	"strconv"

	"postfeed/internal/core/posts"
)

// ListHandler handles listing posts
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList lists posts in ascending ID order
// GET /posts?_limit={n}
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Absent or non-positive _limit means "everything", capped by the service
	limit := 0
	if limitStr := r.URL.Query().Get("_limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid _limit parameter: must be an integer")
			return
		}
		if l > 0 {
			limit = l
		}
	}

	result, err := h.service.ListPosts(r.Context(), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		result = []*posts.Post{}
	}

	writeJSON(w, http.StatusOK, result)
}
