package service

import (
	"context"
	"database/sql"
	"errors"

	"contactdesk/internal/models"
	"contactdesk/internal/validation"
)

// AddressRepository defines the persistence operations required by
// AddressService. Every query is scoped to the owning contact.
type AddressRepository interface {
	// Create inserts a new address and fills in its store-assigned ID.
	Create(ctx context.Context, address *models.Address) error
	// FindByID fetches the address belonging to contactID, sql.ErrNoRows
	// when absent or attached elsewhere.
	FindByID(ctx context.Context, contactID, id int64) (*models.Address, error)
	// Update overwrites the address fields.
	Update(ctx context.Context, address *models.Address) error
	// Delete removes the address.
	Delete(ctx context.Context, contactID, id int64) error
	// ListByContact returns all addresses of the given contact.
	ListByContact(ctx context.Context, contactID int64) ([]models.Address, error)
}

// AddressService implements owned-address CRUD nested under a contact.
// Every operation walks the two-level ownership chain: the contact must
// belong to the caller before the address is even looked at.
type AddressService struct {
	repo     AddressRepository
	contacts ContactRepository
}

// NewAddressService constructs an AddressService using the provided
// repositories.
func NewAddressService(repo AddressRepository, contacts ContactRepository) *AddressService {
	return &AddressService{repo: repo, contacts: contacts}
}

// Create stores a new address under one of the user's contacts.
func (s *AddressService) Create(ctx context.Context, user *models.User, req models.CreateAddressRequest) (models.AddressResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.AddressResponse{}, err
	}

	if err := s.mustOwnContact(ctx, user.Username, req.ContactID); err != nil {
		return models.AddressResponse{}, err
	}

	address := &models.Address{
		ContactID:  req.ContactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return models.AddressResponse{}, err
	}

	return models.ToAddressResponse(address), nil
}

// Get fetches an address through the user's ownership chain.
func (s *AddressService) Get(ctx context.Context, user *models.User, contactID, addressID int64) (models.AddressResponse, error) {
	if err := s.mustOwnContact(ctx, user.Username, contactID); err != nil {
		return models.AddressResponse{}, err
	}
	address, err := s.mustExist(ctx, contactID, addressID)
	if err != nil {
		return models.AddressResponse{}, err
	}
	return models.ToAddressResponse(address), nil
}

// Update overwrites all fields of an address through the ownership chain.
func (s *AddressService) Update(ctx context.Context, user *models.User, req models.UpdateAddressRequest) (models.AddressResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.AddressResponse{}, err
	}

	if err := s.mustOwnContact(ctx, user.Username, req.ContactID); err != nil {
		return models.AddressResponse{}, err
	}
	address, err := s.mustExist(ctx, req.ContactID, req.ID)
	if err != nil {
		return models.AddressResponse{}, err
	}

	address.Street = req.Street
	address.City = req.City
	address.Province = req.Province
	address.Country = req.Country
	address.PostalCode = req.PostalCode
	if err := s.repo.Update(ctx, address); err != nil {
		return models.AddressResponse{}, err
	}

	return models.ToAddressResponse(address), nil
}

// Remove deletes an address through the ownership chain.
func (s *AddressService) Remove(ctx context.Context, user *models.User, contactID, addressID int64) error {
	if err := s.mustOwnContact(ctx, user.Username, contactID); err != nil {
		return err
	}
	if _, err := s.mustExist(ctx, contactID, addressID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, contactID, addressID)
}

// List returns all addresses of one of the user's contacts.
func (s *AddressService) List(ctx context.Context, user *models.User, contactID int64) ([]models.AddressResponse, error) {
	if err := s.mustOwnContact(ctx, user.Username, contactID); err != nil {
		return nil, err
	}

	addresses, err := s.repo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, models.ToAddressResponse(&addresses[i]))
	}
	return responses, nil
}

// mustOwnContact verifies that contactID belongs to username.
func (s *AddressService) mustOwnContact(ctx context.Context, username string, contactID int64) error {
	_, err := s.contacts.FindByID(ctx, username, contactID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrContactNotFound
	}
	return err
}

// mustExist resolves the address scoped to its contact, translating a store
// miss into ErrAddressNotFound.
func (s *AddressService) mustExist(ctx context.Context, contactID, addressID int64) (*models.Address, error) {
	address, err := s.repo.FindByID(ctx, contactID, addressID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return address, nil
}
