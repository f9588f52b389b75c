package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a doctor account with its recurring weekly shifts.
// Fee is stored in cents and charged as-is through the payment gateway.
type Doctor struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	Gender     string    `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Fee        int64     `gorm:"not null" json:"fee"`
	Specialty  string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	ProfileURL string    `gorm:"type:text" json:"profile_url,omitempty"`

	// Available is the coarse on/off switch for accepting new bookings,
	// independent of shift-based availability.
	Available bool `gorm:"not null;default:false;index" json:"available"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Shifts []Shift `gorm:"foreignKey:DoctorID" json:"shifts,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorFilter is a domain-level filter for listing doctors.
// Used by the repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Specialty string
	Name      string // substring match (ILIKE)
	MinFee    *int64
	MaxFee    *int64
	Available *bool
}
