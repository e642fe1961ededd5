package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contactdesk/internal/models"
)

// PostgresAddressRepository implements address persistence against PostgreSQL.
// Every query is scoped to the owning contact; the service layer is
// responsible for checking that the contact itself belongs to the caller.
type PostgresAddressRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAddressRepository creates a PostgresAddressRepository using the
// given database connection.
func NewPostgresAddressRepository(db *sql.DB) *PostgresAddressRepository {
	return &PostgresAddressRepository{DB: db}
}

// Create inserts a new address and fills in its store-assigned ID.
func (r *PostgresAddressRepository) Create(ctx context.Context, address *models.Address) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
	`, address.ContactID, address.Street, address.City, address.Province,
		address.Country, address.PostalCode).Scan(&address.ID)
	if err != nil {
		return fmt.Errorf("Create address: %w", err)
	}
	return nil
}

// FindByID fetches the address with the given id belonging to contactID.
// Returns sql.ErrNoRows when absent or attached to another contact.
func (r *PostgresAddressRepository) FindByID(ctx context.Context, contactID, id int64) (*models.Address, error) {
	var address models.Address
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, contact_id, street, city, province, country, postal_code FROM addresses
		WHERE id = $1 AND contact_id = $2
	`, id, contactID).Scan(&address.ID, &address.ContactID, &address.Street,
		&address.City, &address.Province, &address.Country, &address.PostalCode)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Update overwrites the address fields, scoped to its contact.
func (r *PostgresAddressRepository) Update(ctx context.Context, address *models.Address) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE addresses SET street = $1, city = $2, province = $3, country = $4, postal_code = $5
		WHERE id = $6 AND contact_id = $7
	`, address.Street, address.City, address.Province, address.Country,
		address.PostalCode, address.ID, address.ContactID)
	if err != nil {
		return fmt.Errorf("Update address: %w", err)
	}
	return nil
}

// Delete removes the address with the given id belonging to contactID.
func (r *PostgresAddressRepository) Delete(ctx context.Context, contactID, id int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM addresses WHERE id = $1 AND contact_id = $2`,
		id, contactID,
	)
	if err != nil {
		return fmt.Errorf("Delete address: %w", err)
	}
	return nil
}

// ListByContact returns all addresses of the given contact ordered by id.
func (r *PostgresAddressRepository) ListByContact(ctx context.Context, contactID int64) ([]models.Address, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, contact_id, street, city, province, country, postal_code FROM addresses
		WHERE contact_id = $1 ORDER BY id
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("ListByContact: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByContact: %w", err)
	}
	return addresses, nil
}
