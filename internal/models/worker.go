package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray
	"gorm.io/gorm"
)

// Worker statuses.
const (
	WorkerActive   = "Active"
	WorkerInactive = "Inactive"
)

// Worker is a field staff member complaints are assigned to.
type Worker struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"type:text;not null" json:"name"`
	Email  string `gorm:"type:text;uniqueIndex" json:"email"`
	Phone  string `gorm:"type:text;uniqueIndex" json:"phone"`
	Status string `gorm:"type:text;not null;default:'Active'" json:"status"`

	// Zones lists the city areas this worker covers.
	Zones pq.StringArray `gorm:"type:text[]" json:"zones,omitempty"`

	// AssignedCount is the number of complaints currently assigned to this
	// worker and not yet released. It is a maintained counter, mutated only
	// inside lifecycle-engine transactions, never recomputed from a query.
	AssignedCount int `gorm:"not null;default:0" json:"assignedCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates the worker ID if the caller did not set one.
func (w *Worker) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}
