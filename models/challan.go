package models

import "time"

// Challan is a delivery receipt against a purchase order, possibly partial.
// It is created atomically with the PO-line and stock updates it triggers.
type Challan struct {
	ID            uint           `json:"challan_id" gorm:"primaryKey"`
	ChallanNo     string         `json:"challan_no" gorm:"size:100;not null;unique"`
	POID          uint           `json:"po_id" gorm:"column:po_id;not null;index"`
	PurchaseOrder *PurchaseOrder `json:"purchase_order,omitempty" gorm:"foreignKey:POID"`
	UserID        uint           `json:"user_id" gorm:"not null"`
	Creator       *User          `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	DeliveryDate  time.Time      `json:"delivery_date" gorm:"not null;index"`

	Items []ChallanItem `json:"items,omitempty" gorm:"foreignKey:ChallanID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

type ChallanItem struct {
	ID               uint     `json:"challan_item_id" gorm:"primaryKey"`
	ChallanID        uint     `json:"challan_id" gorm:"not null;index"`
	Challan          *Challan `json:"-" gorm:"foreignKey:ChallanID"`
	ItemID           uint     `json:"item_id" gorm:"not null;index"`
	Item             *Item    `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	QuantityReceived int      `json:"quantity_received" gorm:"not null"`
}
