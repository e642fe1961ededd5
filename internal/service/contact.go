package service

import (
	"context"
	"database/sql"
	"errors"

	"contactdesk/internal/models"
	"contactdesk/internal/repository"
	"contactdesk/internal/validation"
)

// ContactRepository defines the persistence operations required by
// ContactService. Every lookup and mutation is scoped to the owning
// username; a foreign contact behaves exactly like a missing one.
type ContactRepository interface {
	// Create inserts a new contact and fills in its store-assigned ID.
	Create(ctx context.Context, contact *models.Contact) error
	// FindByID fetches the contact owned by username, sql.ErrNoRows when
	// absent or foreign.
	FindByID(ctx context.Context, username string, id int64) (*models.Contact, error)
	// Update overwrites the contact's fields.
	Update(ctx context.Context, contact *models.Contact) error
	// Delete removes the contact and, via the store, its addresses.
	Delete(ctx context.Context, username string, id int64) error
	// Search returns the page of contacts selected by the filter.
	Search(ctx context.Context, filter repository.SearchContactsFilter) ([]models.Contact, error)
	// CountSearch returns the total match count, ignoring the page window.
	CountSearch(ctx context.Context, filter repository.SearchContactsFilter) (int, error)
}

// ContactService implements owned-contact CRUD and paginated search.
type ContactService struct {
	repo ContactRepository
}

// NewContactService constructs a ContactService using the provided repository.
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Create stores a new contact owned by user.
func (s *ContactService) Create(ctx context.Context, user *models.User, req models.CreateContactRequest) (models.ContactResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.ContactResponse{}, err
	}

	contact := &models.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return models.ContactResponse{}, err
	}

	return models.ToContactResponse(contact), nil
}

// Get fetches one of the user's contacts by id.
func (s *ContactService) Get(ctx context.Context, user *models.User, id int64) (models.ContactResponse, error) {
	contact, err := s.mustExist(ctx, user.Username, id)
	if err != nil {
		return models.ContactResponse{}, err
	}
	return models.ToContactResponse(contact), nil
}

// Update overwrites all fields of one of the user's contacts.
func (s *ContactService) Update(ctx context.Context, user *models.User, req models.UpdateContactRequest) (models.ContactResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.ContactResponse{}, err
	}

	contact, err := s.mustExist(ctx, user.Username, req.ID)
	if err != nil {
		return models.ContactResponse{}, err
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	if err := s.repo.Update(ctx, contact); err != nil {
		return models.ContactResponse{}, err
	}

	return models.ToContactResponse(contact), nil
}

// Remove deletes one of the user's contacts and returns the deleted record.
func (s *ContactService) Remove(ctx context.Context, user *models.User, id int64) (models.ContactResponse, error) {
	contact, err := s.mustExist(ctx, user.Username, id)
	if err != nil {
		return models.ContactResponse{}, err
	}
	if err := s.repo.Delete(ctx, user.Username, id); err != nil {
		return models.ContactResponse{}, err
	}
	return models.ToContactResponse(contact), nil
}

// Search returns the user's contacts matching the request criteria plus
// paging metadata. Criteria are combined with AND; the name criterion
// matches either first or last name.
func (s *ContactService) Search(ctx context.Context, user *models.User, req models.SearchContactRequest) ([]models.ContactResponse, *models.Paging, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, nil, err
	}

	filter := repository.SearchContactsFilter{
		Username: user.Username,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Limit:    req.Size,
		Offset:   (req.Page - 1) * req.Size,
	}

	contacts, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.repo.CountSearch(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]models.ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, models.ToContactResponse(&contacts[i]))
	}

	paging := &models.Paging{
		CurrentPage: req.Page,
		Size:        req.Size,
		TotalPage:   (total + req.Size - 1) / req.Size,
	}
	return responses, paging, nil
}

// mustExist resolves the contact with the given id scoped to username,
// translating a store miss into ErrContactNotFound.
func (s *ContactService) mustExist(ctx context.Context, username string, id int64) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, username, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}
