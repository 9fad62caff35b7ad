package database

import (
	"fmt"

	"gorm.io/gorm"

	"edims-backend/models"
)

// AutoMigrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(10,2)) and basic CHECK constraints (Postgres only)
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Item{},
		&models.Department{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Challan{},
		&models.ChallanItem{},
		&models.Bill{},
		&models.BillItem{},
		&models.BillChallan{},
		&models.StockIssue{},
		&models.AuditLog{},
		&models.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	// SQLite (tests) has no ALTER ... TYPE and no DO $$ blocks.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	alters := []string{
		`ALTER TABLE bills      ALTER COLUMN amount TYPE numeric(10,2)`,
		`ALTER TABLE bill_items ALTER COLUMN rate   TYPE numeric(10,2)`,
	}
	for _, stmt := range alters {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
		}
	}

	checks := []string{
		// Ordered quantity must be positive.
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conrelid = 'purchase_order_items'::regclass
				  AND conname  = 'chk_po_items_qty_ordered_pos'
			) THEN
				ALTER TABLE purchase_order_items
				ADD CONSTRAINT chk_po_items_qty_ordered_pos
				CHECK (quantity_ordered > 0);
			END IF;
		END $$;`,
		// Received never exceeds ordered.
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conrelid = 'purchase_order_items'::regclass
				  AND conname  = 'chk_po_items_received_range'
			) THEN
				ALTER TABLE purchase_order_items
				ADD CONSTRAINT chk_po_items_received_range
				CHECK (quantity_received >= 0 AND quantity_received <= quantity_ordered);
			END IF;
		END $$;`,
		// Bill rates are non-negative.
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conrelid = 'bill_items'::regclass
				  AND conname  = 'chk_bill_items_rate_nonneg'
			) THEN
				ALTER TABLE bill_items
				ADD CONSTRAINT chk_bill_items_rate_nonneg
				CHECK (rate >= 0);
			END IF;
		END $$;`,
	}
	for _, stmt := range checks {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("check constraint migration failed: %w", err)
		}
	}

	return nil
}
