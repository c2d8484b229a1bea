package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a citizen who files complaints.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;uniqueIndex" json:"email"`
	Phone        string    `gorm:"type:text;uniqueIndex" json:"phone"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	Complaints []Complaint `gorm:"foreignKey:UserID" json:"complaints,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
