package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"contactdesk/internal/models"
)

// SearchContactsFilter describes a contact search scoped to one owner.
// Empty criteria are skipped; the rest are combined with AND. Name matches
// first or last name by substring, Email and Phone match their own column.
type SearchContactsFilter struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Limit    int
	Offset   int
}

// PostgresContactRepository implements contact persistence against PostgreSQL.
type PostgresContactRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresContactRepository creates a PostgresContactRepository using the
// given database connection.
func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

// Create inserts a new contact and fills in its store-assigned ID.
func (r *PostgresContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO contacts (username, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, contact.Username, contact.FirstName, contact.LastName, contact.Email, contact.Phone).Scan(&contact.ID)
	if err != nil {
		return fmt.Errorf("Create contact: %w", err)
	}
	return nil
}

// FindByID fetches the contact with the given id owned by username.
// A contact owned by someone else is indistinguishable from a missing one:
// both return sql.ErrNoRows.
func (r *PostgresContactRepository) FindByID(ctx context.Context, username string, id int64) (*models.Contact, error) {
	var contact models.Contact
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, phone FROM contacts
		WHERE id = $1 AND username = $2
	`, id, username).Scan(&contact.ID, &contact.Username, &contact.FirstName,
		&contact.LastName, &contact.Email, &contact.Phone)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update overwrites the contact's fields, scoped to its owner.
func (r *PostgresContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE contacts SET first_name = $1, last_name = $2, email = $3, phone = $4
		WHERE id = $5 AND username = $6
	`, contact.FirstName, contact.LastName, contact.Email, contact.Phone,
		contact.ID, contact.Username)
	if err != nil {
		return fmt.Errorf("Update contact: %w", err)
	}
	return nil
}

// Delete removes the contact with the given id owned by username. Its
// addresses go with it via the ON DELETE CASCADE constraint.
func (r *PostgresContactRepository) Delete(ctx context.Context, username string, id int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	)
	if err != nil {
		return fmt.Errorf("Delete contact: %w", err)
	}
	return nil
}

// Search returns the page of contacts selected by the filter, ordered by id
// for stable pagination.
func (r *PostgresContactRepository) Search(ctx context.Context, filter SearchContactsFilter) ([]models.Contact, error) {
	where, args := searchWhere(filter)
	query := fmt.Sprintf(`
		SELECT id, username, first_name, last_name, email, phone FROM contacts
		WHERE %s ORDER BY id LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Search contacts: %w", err)
	}
	return contacts, nil
}

// CountSearch returns the total number of contacts matching the filter,
// ignoring its Limit and Offset.
func (r *PostgresContactRepository) CountSearch(ctx context.Context, filter SearchContactsFilter) (int, error) {
	where, args := searchWhere(filter)
	var total int
	err := r.DB.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM contacts WHERE %s`, where),
		args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("CountSearch: %w", err)
	}
	return total, nil
}

// searchWhere builds the WHERE clause shared by Search and CountSearch.
// The owner scope always comes first; optional criteria are appended with
// positional placeholders.
func searchWhere(filter SearchContactsFilter) (string, []any) {
	where := []string{"username = $1"}
	args := []any{filter.Username}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("(first_name LIKE $%d OR last_name LIKE $%d)", len(args), len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		where = append(where, fmt.Sprintf("email LIKE $%d", len(args)))
	}
	if filter.Phone != "" {
		args = append(args, "%"+filter.Phone+"%")
		where = append(where, fmt.Sprintf("phone LIKE $%d", len(args)))
	}

	return strings.Join(where, " AND "), args
}
