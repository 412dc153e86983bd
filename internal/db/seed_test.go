package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func TestSeedCatalog_AllRowsPresent(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	// Six brands, five models each; every row already exists so no inserts run.
	for i := 0; i < len(catalog); i++ {
		mock.ExpectQuery(`SELECT brand_id FROM brands`).
			WillReturnRows(sqlmock.NewRows([]string{"brand_id"}).AddRow(int64(i + 1)))
		for j := 0; j < 5; j++ {
			mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM models`).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		}
	}

	if err := SeedCatalog(context.Background(), dbMock, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSeedCatalog_InsertsMissingModels(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	for i := 0; i < len(catalog); i++ {
		// Brand missing: lookup finds nothing, insert returns a fresh id.
		mock.ExpectQuery(`SELECT brand_id FROM brands`).
			WillReturnRows(sqlmock.NewRows([]string{"brand_id"}))
		mock.ExpectQuery(`INSERT INTO brands`).
			WillReturnRows(sqlmock.NewRows([]string{"brand_id"}).AddRow(int64(i + 1)))
		for j := 0; j < 5; j++ {
			mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM models`).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectExec(`INSERT INTO models`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
	}

	if err := SeedCatalog(context.Background(), dbMock, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSeedCatalog_BrandLookupError(t *testing.T) {
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	mock.ExpectQuery(`SELECT brand_id FROM brands`).
		WillReturnError(errors.New("db down"))

	if err := SeedCatalog(context.Background(), dbMock, zap.NewNop()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
