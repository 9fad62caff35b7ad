package models

import "time"

// StockIssue is a one-shot disbursement to a department. It decrements
// Item.CurrentStock at creation and is never mutated afterwards; there is no
// return-to-stock operation.
type StockIssue struct {
	ID             uint        `json:"issue_id" gorm:"primaryKey"`
	ItemID         uint        `json:"item_id" gorm:"not null;index"`
	Item           *Item       `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	QuantityIssued int         `json:"quantity_issued" gorm:"not null"`
	DeptID         uint        `json:"dept_id" gorm:"not null;index"`
	Department     *Department `json:"department,omitempty" gorm:"foreignKey:DeptID"`
	Purpose        string      `json:"purpose" gorm:"size:500;not null"`
	UserID         uint        `json:"user_id" gorm:"not null"`
	Creator        *User       `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	IssueDate      time.Time   `json:"issue_date" gorm:"not null;index"`
	CreatedAt      time.Time   `json:"created_at"`
}
