package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"contactdesk/internal/middleware"
	"contactdesk/internal/models"

	"github.com/go-chi/chi/v5"
)

// ContactService defines the contact operations required by the HTTP
// handlers.
type ContactService interface {
	// Create stores a new contact owned by user.
	Create(ctx context.Context, user *models.User, req models.CreateContactRequest) (models.ContactResponse, error)
	// Get fetches one of the user's contacts by id.
	Get(ctx context.Context, user *models.User, id int64) (models.ContactResponse, error)
	// Update overwrites all fields of one of the user's contacts.
	Update(ctx context.Context, user *models.User, req models.UpdateContactRequest) (models.ContactResponse, error)
	// Remove deletes one of the user's contacts and returns the deleted
	// record.
	Remove(ctx context.Context, user *models.User, id int64) (models.ContactResponse, error)
	// Search returns the matching contacts plus paging metadata.
	Search(ctx context.Context, user *models.User, req models.SearchContactRequest) ([]models.ContactResponse, *models.Paging, error)
}

// ContactHandler handles HTTP requests for contact CRUD and search.
type ContactHandler struct {
	ContactService ContactService
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.ContactService.Create(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Get handles GET /api/contacts/{contactID}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}

	resp, err := h.ContactService.Get(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Update handles PUT /api/contacts/{contactID}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}

	var req models.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = id

	resp, err := h.ContactService.Update(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Remove handles DELETE /api/contacts/{contactID}.
func (h *ContactHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}

	resp, err := h.ContactService.Remove(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Search handles GET /api/contacts. Unspecified page and size fall back to
// page=1, size=10; explicit zero or negative values are rejected by the
// service's schema check.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	req := models.SearchContactRequest{
		Name:  q.Get("name"),
		Email: q.Get("email"),
		Phone: q.Get("phone"),
		Page:  1,
		Size:  10,
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		req.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "size must be a number")
			return
		}
		req.Size = size
	}

	resp, paging, err := h.ContactService.Search(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePage(w, resp, paging)
}

// pathID parses a numeric chi route parameter, writing a 400 and returning
// false when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
