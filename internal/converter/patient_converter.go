package converter

import (
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		Name:        patient.Name,
		Email:       patient.Email,
		Phone:       patient.Phone,
		Gender:      patient.Gender,
		DateOfBirth: patient.DateOfBirth,
		ProfileURL:  patient.ProfileURL,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}
