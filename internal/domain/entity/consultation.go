package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusCompleted ConsultationStatus = "completed"
)

// Consultation is a booked half-open time window [StartTime, EndTime) between
// a doctor and a patient. It is created only after a captured payment, and its
// window is mutated only through rescheduling.
type Consultation struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	PaymentID       uuid.UUID          `gorm:"type:uuid;not null" json:"payment_id"`
	StartTime       time.Time          `gorm:"not null" json:"start_time"`
	EndTime         time.Time          `gorm:"not null" json:"end_time"`
	Fee             int64              `gorm:"not null" json:"fee"`
	Symptoms        string             `gorm:"type:text" json:"symptoms,omitempty"`
	RoomID          *string            `gorm:"type:varchar(255)" json:"room_id,omitempty"`
	PrescriptionURL *string            `gorm:"type:text" json:"prescription_url,omitempty"`
	Status          ConsultationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Payment Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsPending checks if the consultation is still scheduled
func (c *Consultation) IsPending() bool {
	return c.Status == ConsultationStatusPending
}

// Overlaps reports whether this consultation's window conflicts with
// [start, end) under half-open semantics. A window that merely touches a
// boundary does not overlap, so back-to-back slots are allowed.
func (c *Consultation) Overlaps(start, end time.Time) bool {
	return c.StartTime.Before(end) && c.EndTime.After(start)
}
