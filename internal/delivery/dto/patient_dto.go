package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientRequest struct {
	Name       string `json:"name" validate:"omitempty,min=2"`
	Phone      string `json:"phone" validate:"omitempty,min=10,max=20"`
	ProfileURL string `json:"profile_url" validate:"omitempty,url"`
}

// Response DTOs

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	ProfileURL  string    `json:"profile_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
