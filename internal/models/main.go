// Package models defines the core data structures for users, contacts
// and contact addresses, plus the request/response shapes of the HTTP API.
package models

import "database/sql"

// User represents an application user with credentials.
type User struct {
	// Username is the unique, immutable login name chosen by the user.
	Username string
	// Name is the display name.
	Name string
	// Password is the bcrypt hash of the user's password.
	Password string
	// Token is the opaque session credential. Invalid (NULL) means
	// the user is logged out.
	Token sql.NullString
}

// Contact is an entry in a user's contact book, owned via Username.
type Contact struct {
	// ID is the store-assigned identifier.
	ID int64
	// Username references the owning user.
	Username string
	// FirstName is required; the remaining fields may be empty.
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Address belongs to exactly one contact via ContactID.
type Address struct {
	// ID is the store-assigned identifier.
	ID int64
	// ContactID references the owning contact.
	ContactID  int64
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
}

// RegisterUserRequest is the payload of POST /api/users.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserRequest is the payload of POST /api/users/login.
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest is the payload of PATCH /api/users/current.
// Both fields are optional, but a field that is present must not be empty;
// pointers distinguish "absent" from "empty string".
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1,max=100"`
}

// UserResponse is the user payload returned by the API. The password hash
// is never exposed; Token is set only by login.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// CreateContactRequest is the payload of POST /api/contacts.
type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateContactRequest is the payload of PUT /api/contacts/{contactID}.
// ID is taken from the URL, not the body.
type UpdateContactRequest struct {
	ID        int64  `json:"-" validate:"required,min=1"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// SearchContactRequest carries the query parameters of GET /api/contacts.
// All criteria are optional and combined with AND; Name matches either
// first or last name by substring.
type SearchContactRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Page  int    `json:"page" validate:"min=1"`
	Size  int    `json:"size" validate:"min=1,max=100"`
}

// ContactResponse is the contact payload returned by the API.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CreateAddressRequest is the payload of
// POST /api/contacts/{contactID}/addresses. ContactID is taken from the URL.
// All five address fields are required.
type CreateAddressRequest struct {
	ContactID  int64  `json:"-" validate:"required,min=1"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Province   string `json:"province" validate:"required,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// UpdateAddressRequest is the payload of
// PUT /api/contacts/{contactID}/addresses/{addressID}.
type UpdateAddressRequest struct {
	ID         int64  `json:"-" validate:"required,min=1"`
	ContactID  int64  `json:"-" validate:"required,min=1"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Province   string `json:"province" validate:"required,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// AddressResponse is the address payload returned by the API.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Paging describes the page window of a search result.
type Paging struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}

// ToUserResponse maps a stored user to its API shape.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}

// ToContactResponse maps a stored contact to its API shape.
func ToContactResponse(c *Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// ToAddressResponse maps a stored address to its API shape.
func ToAddressResponse(a *Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
