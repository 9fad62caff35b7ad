package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillStatusPending   = "Pending"
	BillStatusCompleted = "Completed"
)

// Bill is a vendor invoice covering one or more challans. Amount is computed
// server-side from the validated lines; client-supplied totals are never stored.
// A Completed bill is locked and cannot be deleted.
type Bill struct {
	ID       uint            `json:"bill_id" gorm:"primaryKey"`
	BillNo   string          `json:"bill_no" gorm:"size:100;not null;unique"`
	VendorID uint            `json:"vendor_id" gorm:"not null;index"`
	Vendor   *Vendor         `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	UserID   uint            `json:"user_id" gorm:"not null"`
	Creator  *User           `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	BillDate time.Time       `json:"bill_date" gorm:"not null;index"`
	Amount   decimal.Decimal `json:"bill_amount" gorm:"type:numeric(10,2);not null"`
	Status   string          `json:"status" gorm:"size:20;not null;default:'Pending'"`

	Items    []BillItem `json:"items,omitempty" gorm:"foreignKey:BillID"`
	Challans []Challan  `json:"challans,omitempty" gorm:"many2many:bill_challans;"`

	CreatedAt time.Time `json:"created_at"`
}

type BillItem struct {
	ID       uint            `json:"bill_item_id" gorm:"primaryKey"`
	BillID   uint            `json:"bill_id" gorm:"not null;index"`
	ItemID   uint            `json:"item_id" gorm:"not null;index"`
	Item     *Item           `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity int             `json:"quantity" gorm:"not null"`
	Rate     decimal.Decimal `json:"rate" gorm:"type:numeric(10,2);not null"`
}

// BillChallan is the join table linking a bill to the deliveries it covers.
type BillChallan struct {
	BillID    uint `json:"bill_id" gorm:"primaryKey;autoIncrement:false"`
	ChallanID uint `json:"challan_id" gorm:"primaryKey;autoIncrement:false"`
}
