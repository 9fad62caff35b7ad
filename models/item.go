package models

import "time"

// Item is the stockable master record. CurrentStock is mutated only by
// challan creation (incoming) and stock issue creation (outgoing); both run
// inside the transaction that creates the triggering record.
type Item struct {
	ID           uint      `json:"item_id" gorm:"primaryKey"`
	ItemName     string    `json:"item_name" gorm:"size:255;not null;uniqueIndex:idx_items_name_size_color,priority:1"`
	Size         string    `json:"size" gorm:"size:100;uniqueIndex:idx_items_name_size_color,priority:2"`
	Color        string    `json:"color" gorm:"size:100;uniqueIndex:idx_items_name_size_color,priority:3"`
	CurrentStock int       `json:"current_stock" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}
