package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AuditLog is append-only. Entries are written on sensitive state transitions
// (bill completion, bill deletion) inside the same transaction as the change.
type AuditLog struct {
	ID         uint           `json:"log_id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	ActionType string         `json:"action_type" gorm:"size:50;not null"`
	Module     string         `json:"module" gorm:"size:100;not null"`
	RecordID   uint           `json:"record_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"timestamp"`
}

// AuditDetails marshals a detail map for the Details column.
func AuditDetails(fields map[string]any) datatypes.JSON {
	b, err := json.Marshal(fields)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(b)
}
