package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint types. The type is fixed at creation and decides whether the
// plate-validation gate runs.
const (
	TypeCivic   = "civic"
	TypeTraffic = "traffic"
)

// Complaint statuses. The dash in "In-Progress" is load-bearing: the mobile
// clients were shipped matching on this exact string.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In-Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Validation statuses for traffic complaints. Civic complaints are always
// Approved; a traffic complaint filed without an image stays Pending.
const (
	ValidationApproved     = "Approved"
	ValidationPending      = "Pending"
	ValidationManualReview = "Manual Review"
	ValidationRejected     = "Rejected"
)

// ValidStatus reports whether s is one of the four complaint statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Complaint is a citizen-filed report, civic or traffic. Status, WorkerID and
// ResolvedAt are owned by the lifecycle engine and must not be written through
// any other path.
type Complaint struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Type        string  `gorm:"type:text;not null;index" json:"type"`
	Category    string  `gorm:"type:text;not null;index" json:"category"`
	Subcategory string  `gorm:"type:text" json:"subcategory"`
	Description string  `gorm:"type:text" json:"description"`
	Address     string  `gorm:"type:text" json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	Status           string  `gorm:"type:text;not null;default:'Pending';index" json:"status"`
	ValidationStatus string  `gorm:"type:text;not null;default:'Pending'" json:"validationStatus"`
	PlateNumber      string  `gorm:"type:text" json:"plateNumber,omitempty"`
	ConfidenceScore  float64 `gorm:"default:0" json:"confidenceScore"`

	UserID   string  `gorm:"type:uuid;not null;index" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkerID *string `gorm:"type:uuid;index" json:"workerId,omitempty"`
	Worker   *Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	// ResolvedAt is non-nil exactly while Status == Resolved.
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Media         []Media         `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"statusHistory,omitempty"`
}

// BeforeCreate generates the complaint ID if the caller did not set one.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
