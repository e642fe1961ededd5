package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"contactdesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupAddressMock(t *testing.T) (*PostgresAddressRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAddressRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateAddress_AssignsID(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO addresses (contact_id, street, city, province, country, postal_code)`)).
		WithArgs(int64(7), "Jalan Test", "Jakarta", "DKI", "Indonesia", "12345").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	address := &models.Address{
		ContactID:  7,
		Street:     "Jalan Test",
		City:       "Jakarta",
		Province:   "DKI",
		Country:    "Indonesia",
		PostalCode: "12345",
	}
	if err := repo.Create(context.Background(), address); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address.ID != 3 {
		t.Errorf("expected assigned id 3, got %d", address.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindAddressByID_Found(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "contact_id", "street", "city", "province", "country", "postal_code"}).
		AddRow(int64(3), int64(7), "Jalan Test", "Jakarta", "DKI", "Indonesia", "12345")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses`)).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(rows)

	address, err := repo.FindByID(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address.Country != "Indonesia" || address.PostalCode != "12345" {
		t.Errorf("unexpected address: %+v", address)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindAddressByID_WrongContactLooksMissing(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses`)).
		WithArgs(int64(3), int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99, 3)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateAddress(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE addresses SET street = $1, city = $2, province = $3, country = $4, postal_code = $5`)).
		WithArgs("Jalan Baru", "Bandung", "Jawa Barat", "Indonesia", "54321", int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Address{
		ID:         3,
		ContactID:  7,
		Street:     "Jalan Baru",
		City:       "Bandung",
		Province:   "Jawa Barat",
		Country:    "Indonesia",
		PostalCode: "54321",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteAddress(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM addresses WHERE id = $1 AND contact_id = $2`)).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByContact(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "contact_id", "street", "city", "province", "country", "postal_code"}).
		AddRow(int64(1), int64(7), "A", "Jakarta", "DKI", "Indonesia", "11111").
		AddRow(int64(2), int64(7), "B", "Jakarta", "DKI", "Indonesia", "22222")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	addresses, err := repo.ListByContact(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(addresses))
	}
	if addresses[0].ID != 1 || addresses[1].ID != 2 {
		t.Errorf("unexpected order: %+v", addresses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByContact_Empty(t *testing.T) {
	repo, mock, cleanup := setupAddressMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "contact_id", "street", "city", "province", "country", "postal_code"})
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses`)).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	addresses, err := repo.ListByContact(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addresses) != 0 {
		t.Errorf("expected no addresses, got %d", len(addresses))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
