package http

import (
	"context"
	"encoding/json"
	"net/http"

	"contactdesk/internal/middleware"
	"contactdesk/internal/models"
)

// AddressService defines the address operations required by the HTTP
// handlers.
type AddressService interface {
	// Create stores a new address under one of the user's contacts.
	Create(ctx context.Context, user *models.User, req models.CreateAddressRequest) (models.AddressResponse, error)
	// Get fetches an address through the user's ownership chain.
	Get(ctx context.Context, user *models.User, contactID, addressID int64) (models.AddressResponse, error)
	// Update overwrites all fields of an address.
	Update(ctx context.Context, user *models.User, req models.UpdateAddressRequest) (models.AddressResponse, error)
	// Remove deletes an address.
	Remove(ctx context.Context, user *models.User, contactID, addressID int64) error
	// List returns all addresses of one of the user's contacts.
	List(ctx context.Context, user *models.User, contactID int64) ([]models.AddressResponse, error)
}

// AddressHandler handles HTTP requests for the address resource nested
// under /api/contacts/{contactID}/addresses.
type AddressHandler struct {
	AddressService AddressService
}

// Create handles POST /api/contacts/{contactID}/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contactID, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}

	var req models.CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ContactID = contactID

	resp, err := h.AddressService.Create(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Get handles GET /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contactID, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID", "address id must be a number")
	if !ok {
		return
	}

	resp, err := h.AddressService.Get(r.Context(), user, contactID, addressID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Update handles PUT /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contactID, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID", "address id must be a number")
	if !ok {
		return
	}

	var req models.UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = addressID
	req.ContactID = contactID

	resp, err := h.AddressService.Update(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Remove handles DELETE /api/contacts/{contactID}/addresses/{addressID}.
// Success is reported as data:true.
func (h *AddressHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contactID, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID", "address id must be a number")
	if !ok {
		return
	}

	if err := h.AddressService.Remove(r.Context(), user, contactID, addressID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, true)
}

// List handles GET /api/contacts/{contactID}/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contactID, ok := pathID(w, r, "contactID", "contact id must be a number")
	if !ok {
		return
	}

	resp, err := h.AddressService.List(r.Context(), user, contactID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}
