package models

import "time"

const (
	POStatusPending   = "Pending Delivery"
	POStatusCompleted = "Completed"
)

// PurchaseOrder records what was ordered from a vendor. Status flips to
// Completed as a side effect of challan creation once every line is fully
// received; it is never set directly by a client.
type PurchaseOrder struct {
	ID         uint      `json:"po_id" gorm:"primaryKey"`
	PurchaseNo string    `json:"purchase_no" gorm:"size:100;not null;unique"`
	VendorID   uint      `json:"vendor_id" gorm:"not null;index"`
	Vendor     *Vendor   `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	Creator    *User     `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	OrderDate  time.Time `json:"order_date" gorm:"not null"`
	Status     string    `json:"status" gorm:"size:30;not null;default:'Pending Delivery'"`
	Remarks    string    `json:"remarks" gorm:"size:500"`

	Items []PurchaseOrderItem `json:"items,omitempty" gorm:"foreignKey:POID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// PurchaseOrderItem is created once with quantity_received = 0; only challan
// creation mutates quantity_received, and 0 <= received <= ordered always holds.
type PurchaseOrderItem struct {
	ID               uint  `json:"po_item_id" gorm:"primaryKey"`
	POID             uint  `json:"po_id" gorm:"column:po_id;not null;uniqueIndex:idx_po_items_po_item,priority:1"`
	ItemID           uint  `json:"item_id" gorm:"not null;uniqueIndex:idx_po_items_po_item,priority:2"`
	Item             *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	QuantityOrdered  int   `json:"quantity_ordered" gorm:"not null"`
	QuantityReceived int   `json:"quantity_received" gorm:"not null;default:0"`
}
