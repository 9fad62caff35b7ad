package models

import "time"

type Department struct {
	ID        uint      `json:"dept_id" gorm:"primaryKey"`
	DeptName  string    `json:"dept_name" gorm:"size:255;not null;unique"`
	CreatedAt time.Time `json:"created_at"`
}
