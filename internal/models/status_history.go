package models

import "time"

// StatusHistory is one entry of the append-only audit trail. Entries are
// written inside the same transaction as the status change they record and are
// never updated or deleted. The auto-increment ID breaks ties between entries
// sharing a timestamp.
type StatusHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID string    `gorm:"type:uuid;not null;index" json:"complaintId"`
	OldStatus   string    `gorm:"type:text;not null" json:"oldStatus"`
	NewStatus   string    `gorm:"type:text;not null" json:"newStatus"`
	ChangedBy   string    `gorm:"type:text;not null" json:"changedBy"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
