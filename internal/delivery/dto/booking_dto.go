package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// BookSlotRequest books a consultation slot with a doctor. SourceID is the
// tokenized card reference produced by the payment form on the client.
type BookSlotRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	SourceID  string    `json:"source_id" validate:"required"`
	Symptoms  string    `json:"symptoms" validate:"omitempty,max=2000"`
}

// CheckSlotRequest probes slot availability without charging anything.
type CheckSlotRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// RescheduleRequest moves an existing consultation to a new slot.
type RescheduleRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
}

// Response DTOs

type BookSlotResponse struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	PaymentID      uuid.UUID `json:"payment_id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Fee            int64     `json:"fee"`
	Status         string    `json:"status"`
}

type CheckSlotResponse struct {
	Available bool `json:"available"`
}
