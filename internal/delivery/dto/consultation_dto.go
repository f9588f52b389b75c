package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AttachPrescriptionRequest struct {
	PrescriptionURL string `json:"prescription_url" validate:"required,url"`
}

// Response DTOs

// ConsultationResponse is the doctor-facing view of a consultation: it
// carries the patient's details but not the doctor's own.
type ConsultationResponse struct {
	ID              uuid.UUID        `json:"id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	Fee             int64            `json:"fee"`
	Symptoms        string           `json:"symptoms,omitempty"`
	Status          string           `json:"status"`
	RoomID          *string          `json:"room_id,omitempty"`
	PrescriptionURL *string          `json:"prescription_url,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PatientConsultationResponse is the patient-facing view: it carries the
// doctor's details but not the patient's own.
type PatientConsultationResponse struct {
	ID              uuid.UUID       `json:"id"`
	Doctor          *DoctorResponse `json:"doctor,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Fee             int64           `json:"fee"`
	Symptoms        string          `json:"symptoms,omitempty"`
	Status          string          `json:"status"`
	RoomID          *string         `json:"room_id,omitempty"`
	PrescriptionURL *string         `json:"prescription_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

type PatientConsultationListResponse struct {
	Consultations []PatientConsultationResponse `json:"consultations"`
	Total         int                           `json:"total"`
}

// JoinConsultationResponse holds everything a client needs to enter the
// video room for a consultation.
type JoinConsultationResponse struct {
	RoomID string `json:"room_id"`
	Token  string `json:"token"`
}
