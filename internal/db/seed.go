package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// catalog maps each seeded brand to its models.
var catalog = map[string][]string{
	"Toyota":    {"Corolla", "Camry", "RAV4", "Highlander", "Tacoma"},
	"Honda":     {"Civic", "Accord", "CR-V", "Pilot", "Fit"},
	"Ford":      {"F-150", "Mustang", "Explorer", "Focus", "Escape"},
	"Chevrolet": {"Silverado", "Malibu", "Equinox", "Tahoe", "Camaro"},
	"BMW":       {"3 Series", "5 Series", "X3", "X5", "M4"},
	"Nissan":    {"Altima", "Sentra", "Rogue", "Pathfinder", "Frontier"},
}

// SeedCatalog inserts the built-in brand and model catalog, skipping rows
// that already exist so repeated startups leave the tables unchanged.
func SeedCatalog(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	seeded := 0
	for brandName, modelNames := range catalog {
		var brandID int64
		err := db.QueryRowContext(ctx,
			`SELECT brand_id FROM brands WHERE brand_name = $1`,
			brandName,
		).Scan(&brandID)
		if err == sql.ErrNoRows {
			err = db.QueryRowContext(ctx,
				`INSERT INTO brands (brand_name) VALUES ($1) RETURNING brand_id`,
				brandName,
			).Scan(&brandID)
		}
		if err != nil {
			return fmt.Errorf("seed brand %q: %w", brandName, err)
		}

		for _, modelName := range modelNames {
			var exists bool
			err := db.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM models WHERE brand_id = $1 AND model_name = $2)`,
				brandID, modelName,
			).Scan(&exists)
			if err != nil {
				return fmt.Errorf("check model %q: %w", modelName, err)
			}
			if exists {
				continue
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO models (brand_id, model_name) VALUES ($1, $2)`,
				brandID, modelName,
			); err != nil {
				return fmt.Errorf("seed model %q: %w", modelName, err)
			}
			seeded++
		}
	}

	if seeded > 0 {
		log.Info("seeded vehicle catalog", zap.Int("models", seeded))
	}
	return nil
}
