package converter

import (
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:         doctor.ID,
		Name:       doctor.Name,
		Email:      doctor.Email,
		Phone:      doctor.Phone,
		Specialty:  doctor.Specialty,
		Fee:        doctor.Fee,
		Available:  doctor.Available,
		ProfileURL: doctor.ProfileURL,
		CreatedAt:  doctor.CreatedAt,
		UpdatedAt:  doctor.UpdatedAt,
	}

	for _, shift := range doctor.Shifts {
		response.Shifts = append(response.Shifts, dto.ShiftResponse{
			ID:           shift.ID,
			DayOfWeek:    shift.DayOfWeek,
			StartTime:    shift.StartTime,
			EndTime:      shift.EndTime,
			SlotDuration: shift.SlotDuration,
		})
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}
