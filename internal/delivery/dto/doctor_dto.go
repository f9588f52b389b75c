package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sagarmamodia/RemediX/internal/clock"
)

// Request DTOs

// ListDoctorsRequest carries the optional query-string filters for the
// doctor directory. Fees are in cents.
type ListDoctorsRequest struct {
	Specialty string `json:"specialty" validate:"omitempty"`
	Name      string `json:"name" validate:"omitempty"`
	MinFee    *int64 `json:"min_fee" validate:"omitempty,gte=0"`
	MaxFee    *int64 `json:"max_fee" validate:"omitempty,gte=0"`
	Available *bool  `json:"available" validate:"omitempty"`
}

// InstantDoctorsRequest asks for every available doctor of a specialty who
// could take the given slot right now.
type InstantDoctorsRequest struct {
	Specialty string    `json:"specialty" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type UpdateDoctorRequest struct {
	Name       string `json:"name" validate:"omitempty,min=2"`
	Specialty  string `json:"specialty" validate:"omitempty"`
	Fee        *int64 `json:"fee" validate:"omitempty,gt=0"`
	ProfileURL string `json:"profile_url" validate:"omitempty,url"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// Response DTOs

type ShiftResponse struct {
	ID           int           `json:"id"`
	DayOfWeek    clock.Weekday `json:"day_of_week"`
	StartTime    int           `json:"start_time"`
	EndTime      int           `json:"end_time"`
	SlotDuration int           `json:"slot_duration"`
}

type DoctorResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Specialty  string          `json:"specialty"`
	Fee        int64           `json:"fee"`
	Available  bool            `json:"available"`
	ProfileURL string          `json:"profile_url,omitempty"`
	Shifts     []ShiftResponse `json:"shifts,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
