package models

import (
	"time"

	"gorm.io/datatypes"
)

// Media is an uploaded image attached to a complaint. The file itself lives in
// the object store; this row only records the returned reference.
type Media struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"type:uuid;not null;index" json:"complaintId"`
	URL         string `gorm:"type:text;not null" json:"url"`
	// PublicID is the object-store key, kept so the object can be located
	// independently of the URL format.
	PublicID string `gorm:"type:text" json:"publicId"`
	Type     string `gorm:"type:text;not null;default:'image'" json:"type"`
	// Metadata holds optional upload details (dimensions, content type).
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
