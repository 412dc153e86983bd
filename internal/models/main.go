// Package models defines the core data structures for users, the vehicle
// catalog, and sales.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Email is the user's registered e-mail address.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Brand is a vehicle manufacturer, seeded once at startup.
type Brand struct {
	BrandID   int64  `json:"brand_id"`
	BrandName string `json:"brand_name"`
}

// Model is a vehicle model belonging to a brand, seeded once at startup.
type Model struct {
	ModelID   int64  `json:"model_id"`
	BrandID   int64  `json:"brand_id"`
	ModelName string `json:"model_name"`
}

// ModelChoice is a model joined with its brand name, used to populate
// the sale form's model selection.
type ModelChoice struct {
	ModelID   int64  `json:"model_id"`
	BrandName string `json:"brand_name"`
	ModelName string `json:"model_name"`
}

// VehicleStatus is the sale state of a vehicle.
type VehicleStatus string

const (
	// StatusAvailable marks a vehicle still on the lot.
	StatusAvailable VehicleStatus = "Available"
	// StatusSold marks a vehicle with a recorded sale.
	StatusSold VehicleStatus = "Sold"
)

// Valid reports whether s is one of the known statuses.
func (s VehicleStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// Vehicle is a physical vehicle identified by its VIN.
type Vehicle struct {
	// VIN is the 17-character vehicle identification number, the primary key.
	VIN string `json:"vin"`
	// ModelID references the vehicle's catalog model.
	ModelID int64 `json:"model_id"`
	// Color is the exterior color.
	Color string `json:"color"`
	// Engine describes the engine fitted.
	Engine string `json:"engine"`
	// Transmission describes the transmission fitted.
	Transmission string `json:"transmission"`
	// Status is Available or Sold.
	Status VehicleStatus `json:"status"`
}

// VehicleListing is a vehicle joined with its model and brand names for
// inventory browsing.
type VehicleListing struct {
	VIN          string        `json:"vin"`
	BrandName    string        `json:"brand_name"`
	ModelName    string        `json:"model_name"`
	Color        string        `json:"color"`
	Engine       string        `json:"engine"`
	Transmission string        `json:"transmission"`
	Status       VehicleStatus `json:"status"`
}

// Sale records one sale of a vehicle. A vehicle may accumulate several
// sale rows over time.
type Sale struct {
	SaleID    int64     `json:"sale_id"`
	VIN       string    `json:"vin"`
	CustID    int64     `json:"cust_id"`
	DealerID  int64     `json:"dealer_id"`
	SaleDate  time.Time `json:"sale_date"`
	SalePrice float64   `json:"sale_price"`
}

// BrandSales is one row of the top-brands report: a brand name and the
// sum of its sale prices.
type BrandSales struct {
	BrandName  string  `json:"brand_name"`
	TotalSales float64 `json:"total_sales"`
}
