// Package service provides inventory business logic: the sale-recording
// workflow, inventory browsing, the top-brands report, and vehicle deletion.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dealerdesk/dealerdesk/internal/models"
	"go.uber.org/zap"
)

// ErrValidation wraps input problems the caller should re-prompt for.
var ErrValidation = errors.New("validation failed")

// ErrVehicleNotFound is returned when deleting a VIN with no vehicle row.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrNoModels is returned when the model catalog is empty and the sale form
// cannot be populated.
var ErrNoModels = errors.New("no models available")

const vinLength = 17

// defaultTopBrandsLimit bounds the report when the caller passes no limit.
const defaultTopBrandsLimit = 2

// InventoryRepository defines the persistence operations required by the
// inventory service.
type InventoryRepository interface {
	// GetVehicle returns the vehicle with the given VIN, or sql.ErrNoRows.
	GetVehicle(ctx context.Context, vin string) (*models.Vehicle, error)
	// ListVehicles returns all vehicles joined with model and brand names.
	ListVehicles(ctx context.Context) ([]models.VehicleListing, error)
	// ListModels returns the model catalog joined with brand names.
	ListModels(ctx context.Context) ([]models.ModelChoice, error)
	// RecordSale upserts the vehicle and optionally inserts a sale in one transaction.
	RecordSale(ctx context.Context, v models.Vehicle, sale *models.Sale) error
	// DeleteVehicle removes the vehicle and its sales; returns deleted vehicle count.
	DeleteVehicle(ctx context.Context, vin string) (int64, error)
	// TopBrands ranks brands by summed sale revenue.
	TopBrands(ctx context.Context, limit int) ([]models.BrandSales, error)
}

// SaleInput carries the submitted sale form fields. CustID and DealerID
// arrive as strings and must parse as integers; everything else is assumed
// presence/length-checked by the transport layer except where noted.
type SaleInput struct {
	VIN          string  `json:"vin"`
	ModelID      int64   `json:"model_id"`
	Color        string  `json:"color"`
	Engine       string  `json:"engine"`
	Transmission string  `json:"transmission"`
	Status       string  `json:"status"`
	CustID       string  `json:"cust_id"`
	DealerID     string  `json:"dealer_id"`
	SalePrice    float64 `json:"sale_price"`
}

// InventoryService implements the inventory workflows on top of an
// InventoryRepository.
type InventoryService struct {
	repo   InventoryRepository
	logger *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo InventoryRepository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{repo: repo, logger: logger}
}

// RecordSale validates the submitted fields, upserts the vehicle keyed by
// VIN, and, when the status is Sold, appends a sale row — all in a single
// repository transaction. Validation failures abort before the store is
// touched. Recording a sale against an already-sold VIN is allowed; each
// Sold submission appends another sale row.
func (s *InventoryService) RecordSale(ctx context.Context, in SaleInput) error {
	sale, err := s.validate(in)
	if err != nil {
		return err
	}

	v := models.Vehicle{
		VIN:          in.VIN,
		ModelID:      in.ModelID,
		Color:        in.Color,
		Engine:       in.Engine,
		Transmission: in.Transmission,
		Status:       models.VehicleStatus(in.Status),
	}

	if err := s.repo.RecordSale(ctx, v, sale); err != nil {
		s.logger.Error("failed to record sale", zap.String("vin", in.VIN), zap.Error(err))
		return fmt.Errorf("record sale: %w", err)
	}

	s.logger.Info("sale workflow completed",
		zap.String("vin", in.VIN),
		zap.String("status", in.Status),
		zap.Bool("sale_appended", sale != nil),
	)
	return nil
}

// validate checks the fields this workflow owns and builds the sale row
// to insert when the status is Sold.
func (s *InventoryService) validate(in SaleInput) (*models.Sale, error) {
	if len(in.VIN) != vinLength {
		return nil, fmt.Errorf("%w: vin must be %d characters", ErrValidation, vinLength)
	}
	if in.ModelID <= 0 {
		return nil, fmt.Errorf("%w: model_id is required", ErrValidation)
	}
	status := models.VehicleStatus(in.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrValidation, models.StatusAvailable, models.StatusSold)
	}
	if in.SalePrice < 0 {
		return nil, fmt.Errorf("%w: sale_price must not be negative", ErrValidation)
	}

	custID, err := strconv.ParseInt(in.CustID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: customer ID and dealer ID must be valid integers", ErrValidation)
	}
	dealerID, err := strconv.ParseInt(in.DealerID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: customer ID and dealer ID must be valid integers", ErrValidation)
	}

	if status != models.StatusSold {
		return nil, nil
	}
	return &models.Sale{
		VIN:       in.VIN,
		CustID:    custID,
		DealerID:  dealerID,
		SalePrice: in.SalePrice,
	}, nil
}

// GetVehicle returns the vehicle with the given VIN, or ErrVehicleNotFound.
func (s *InventoryService) GetVehicle(ctx context.Context, vin string) (*models.Vehicle, error) {
	v, err := s.repo.GetVehicle(ctx, vin)
	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// ListVehicles returns the full inventory with model and brand names.
func (s *InventoryService) ListVehicles(ctx context.Context) ([]models.VehicleListing, error) {
	return s.repo.ListVehicles(ctx)
}

// ListModels returns the model catalog for the sale form. An empty catalog
// yields ErrNoModels so the caller can redirect instead of rendering an
// unusable form.
func (s *InventoryService) ListModels(ctx context.Context) ([]models.ModelChoice, error) {
	choices, err := s.repo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	if len(choices) == 0 {
		return nil, ErrNoModels
	}
	return choices, nil
}

// TopBrands ranks brands by total sale revenue, descending. A non-positive
// limit falls back to the default of 2. Brands without sales are excluded.
func (s *InventoryService) TopBrands(ctx context.Context, limit int) ([]models.BrandSales, error) {
	if limit <= 0 {
		limit = defaultTopBrandsLimit
	}
	return s.repo.TopBrands(ctx, limit)
}

// DeleteVehicle removes the vehicle and every sale recorded against it in
// one transaction. Unknown VINs yield ErrVehicleNotFound.
func (s *InventoryService) DeleteVehicle(ctx context.Context, vin string) error {
	deleted, err := s.repo.DeleteVehicle(ctx, vin)
	if err != nil {
		s.logger.Error("failed to delete vehicle", zap.String("vin", vin), zap.Error(err))
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if deleted == 0 {
		return ErrVehicleNotFound
	}
	s.logger.Info("vehicle deleted", zap.String("vin", vin))
	return nil
}
