// Package http provides HTTP handlers for inventory browsing, sale
// recording, reporting, and vehicle deletion.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk/internal/models"
	"github.com/dealerdesk/dealerdesk/internal/service"
)

// InventoryService defines the interface for inventory operations
// required by the InventoryHandler.
type InventoryService interface {
	// RecordSale runs the sale workflow for the submitted form fields.
	RecordSale(ctx context.Context, in service.SaleInput) error
	// GetVehicle returns one vehicle by VIN.
	GetVehicle(ctx context.Context, vin string) (*models.Vehicle, error)
	// ListVehicles returns the full inventory with model and brand names.
	ListVehicles(ctx context.Context) ([]models.VehicleListing, error)
	// ListModels returns the model catalog for the sale form.
	ListModels(ctx context.Context) ([]models.ModelChoice, error)
	// TopBrands ranks brands by total sale revenue.
	TopBrands(ctx context.Context, limit int) ([]models.BrandSales, error)
	// DeleteVehicle removes a vehicle and its sales.
	DeleteVehicle(ctx context.Context, vin string) error
}

// InventoryHandler handles HTTP requests for vehicles, sales, and reports.
type InventoryHandler struct {
	InventoryService InventoryService
}

// ListVehicles handles GET /api/vehicles.
func (h *InventoryHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	listings, err := h.InventoryService.ListVehicles(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if listings == nil {
		listings = []models.VehicleListing{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listings)
}

// GetVehicle handles GET /api/vehicles/{vin}.
func (h *InventoryHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vin := chi.URLParam(r, "vin")
	v, err := h.InventoryService.GetVehicle(r.Context(), vin)
	if errors.Is(err, service.ErrVehicleNotFound) {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListModels handles GET /api/models. An empty catalog is reported as 404
// so clients can tell the sale form cannot be used yet.
func (h *InventoryHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	choices, err := h.InventoryService.ListModels(r.Context())
	if errors.Is(err, service.ErrNoModels) {
		http.Error(w, "no models available", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(choices)
}

// RecordSale handles POST /api/sales.
// It decodes the sale form, runs the sale workflow, and distinguishes
// validation failures (400) from store failures (500).
func (h *InventoryHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var in service.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	err := h.InventoryService.RecordSale(r.Context(), in)
	if errors.Is(err, service.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to record sale", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// TopBrands handles GET /api/reports/top-brands?limit=N.
// A missing or unparseable limit falls back to the service default.
func (h *InventoryHandler) TopBrands(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	report, err := h.InventoryService.TopBrands(r.Context(), limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if report == nil {
		report = []models.BrandSales{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

// DeleteVehicle handles DELETE /api/vehicles/{vin}.
// The vehicle and all of its sale rows are removed together; unknown VINs
// yield 404.
func (h *InventoryHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vin := chi.URLParam(r, "vin")

	err := h.InventoryService.DeleteVehicle(r.Context(), vin)
	if errors.Is(err, service.ErrVehicleNotFound) {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to delete vehicle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
