// Package repository provides persistence implementations for inventory
// services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/models"
)

// PostgresInventoryRepository implements vehicle and sale persistence
// against a PostgreSQL database.
type PostgresInventoryRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresInventoryRepository creates a new PostgresInventoryRepository
// using the provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{DB: db}
}

// GetVehicle retrieves a vehicle by VIN. Returns sql.ErrNoRows if no such
// vehicle exists.
func (r *PostgresInventoryRepository) GetVehicle(ctx context.Context, vin string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.DB.QueryRowContext(ctx, `
		SELECT vin, model_id, color, engine, transmission, status FROM vehicles
		WHERE vin = $1
	`, vin).Scan(&v.VIN, &v.ModelID, &v.Color, &v.Engine, &v.Transmission, &v.Status)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVehicles fetches all vehicles joined with their model and brand names.
//
//	ctx: context for cancellation and deadlines
//
// Returns a slice of models.VehicleListing or an error if the query or
// scanning fails.
func (r *PostgresInventoryRepository) ListVehicles(ctx context.Context) ([]models.VehicleListing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT v.vin, b.brand_name, m.model_name, v.color, v.engine, v.transmission, v.status
		FROM vehicles v
		JOIN models m ON m.model_id = v.model_id
		JOIN brands b ON b.brand_id = m.brand_id
		ORDER BY v.vin
	`)
	if err != nil {
		return nil, fmt.Errorf("ListVehicles: %w", err)
	}
	defer rows.Close()

	var listings []models.VehicleListing
	for rows.Next() {
		var l models.VehicleListing
		if err := rows.Scan(&l.VIN, &l.BrandName, &l.ModelName, &l.Color, &l.Engine, &l.Transmission, &l.Status); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ListModels fetches the model catalog joined with brand names, ordered for
// stable form rendering.
func (r *PostgresInventoryRepository) ListModels(ctx context.Context) ([]models.ModelChoice, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.model_id, b.brand_name, m.model_name
		FROM models m
		JOIN brands b ON b.brand_id = m.brand_id
		ORDER BY b.brand_name, m.model_name
	`)
	if err != nil {
		return nil, fmt.Errorf("ListModels: %w", err)
	}
	defer rows.Close()

	var choices []models.ModelChoice
	for rows.Next() {
		var c models.ModelChoice
		if err := rows.Scan(&c.ModelID, &c.BrandName, &c.ModelName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// RecordSale upserts the vehicle keyed by its VIN and, if sale is non-nil,
// inserts the sale row, all within a single transaction. The vehicle is
// inserted on first sighting of the VIN and updated in place afterwards;
// existing sale rows are never touched. On any failure the transaction is
// rolled back in full.
func (r *PostgresInventoryRepository) RecordSale(ctx context.Context, v models.Vehicle, sale *models.Sale) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT vin FROM vehicles WHERE vin = $1
	`, v.VIN).Scan(&existing)
	switch err {
	case sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vehicles (vin, model_id, color, engine, transmission, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, v.VIN, v.ModelID, v.Color, v.Engine, v.Transmission, v.Status)
		if err != nil {
			return fmt.Errorf("insert vehicle: %w", err)
		}
	case nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE vehicles
			SET model_id = $2, color = $3, engine = $4, transmission = $5, status = $6
			WHERE vin = $1
		`, v.VIN, v.ModelID, v.Color, v.Engine, v.Transmission, v.Status)
		if err != nil {
			return fmt.Errorf("update vehicle: %w", err)
		}
	default:
		return fmt.Errorf("lookup vehicle: %w", err)
	}

	if sale != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales (vin, cust_id, dealer_id, sale_price)
			VALUES ($1, $2, $3, $4)
		`, sale.VIN, sale.CustID, sale.DealerID, sale.SalePrice)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteVehicle removes all sale rows for the VIN and then the vehicle
// itself within one transaction. It returns the number of vehicles deleted
// (0 when the VIN was unknown) so callers can distinguish not-found.
func (r *PostgresInventoryRepository) DeleteVehicle(ctx context.Context, vin string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE vin = $1`, vin); err != nil {
		return 0, fmt.Errorf("delete sales: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE vin = $1`, vin)
	if err != nil {
		return 0, fmt.Errorf("delete vehicle: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return deleted, nil
}

// TopBrands returns up to limit brands ranked by total sale revenue,
// descending. Brands without sales are excluded by the inner joins; ties
// are broken by brand name ascending.
func (r *PostgresInventoryRepository) TopBrands(ctx context.Context, limit int) ([]models.BrandSales, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.brand_name, SUM(s.sale_price) AS total_sales
		FROM brands b
		JOIN models m ON m.brand_id = b.brand_id
		JOIN vehicles v ON v.model_id = m.model_id
		JOIN sales s ON s.vin = v.vin
		GROUP BY b.brand_name
		ORDER BY total_sales DESC, b.brand_name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("TopBrands: %w", err)
	}
	defer rows.Close()

	var report []models.BrandSales
	for rows.Next() {
		var bs models.BrandSales
		if err := rows.Scan(&bs.BrandName, &bs.TotalSales); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		report = append(report, bs)
	}
	return report, rows.Err()
}
