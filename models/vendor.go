package models

import "time"

type Vendor struct {
	ID            uint      `json:"vendor_id" gorm:"primaryKey"`
	VendorName    string    `json:"vendor_name" gorm:"size:255;not null;unique"`
	GstNo         string    `json:"gst_no" gorm:"size:15;not null;unique"` // standard GSTIN is 15 characters
	ContactPerson string    `json:"contact_person" gorm:"size:255"`
	Phone         string    `json:"phone" gorm:"size:50"`
	Email         string    `json:"email" gorm:"size:255"`
	Address       string    `json:"address" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at"`
}
