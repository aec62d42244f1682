package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"postfeed/internal/core/posts"
)

// maxRequestBody bounds POST /posts bodies
const maxRequestBody = 1 * 1024 * 1024

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate stores a new post and echoes it back with its assigned id
// POST /posts
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var draft posts.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 1MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(r.Context(), draft)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/posts/"+strconv.Itoa(post.ID))
	writeJSON(w, http.StatusCreated, post)
}
