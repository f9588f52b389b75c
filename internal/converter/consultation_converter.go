package converter

import (
	"github.com/google/uuid"

	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to the doctor-facing
// ConsultationResponse DTO. The patient association is included only when it
// was preloaded.
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:              consultation.ID,
		StartTime:       consultation.StartTime,
		EndTime:         consultation.EndTime,
		Fee:             consultation.Fee,
		Symptoms:        consultation.Symptoms,
		Status:          string(consultation.Status),
		RoomID:          consultation.RoomID,
		PrescriptionURL: consultation.PrescriptionURL,
		CreatedAt:       consultation.CreatedAt,
		UpdatedAt:       consultation.UpdatedAt,
	}

	if consultation.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&consultation.Patient)
	}

	return response
}

// ConsultationToPatientResponse converts a Consultation entity to the
// patient-facing PatientConsultationResponse DTO.
func ConsultationToPatientResponse(consultation *entity.Consultation) *dto.PatientConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.PatientConsultationResponse{
		ID:              consultation.ID,
		StartTime:       consultation.StartTime,
		EndTime:         consultation.EndTime,
		Fee:             consultation.Fee,
		Symptoms:        consultation.Symptoms,
		Status:          string(consultation.Status),
		RoomID:          consultation.RoomID,
		PrescriptionURL: consultation.PrescriptionURL,
		CreatedAt:       consultation.CreatedAt,
		UpdatedAt:       consultation.UpdatedAt,
	}

	if consultation.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&consultation.Doctor)
	}

	return response
}

// ConsultationsToResponses converts a slice of Consultation entities to
// doctor-facing DTOs
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = *ConsultationToResponse(&consultation)
	}
	return responses
}

// ConsultationsToPatientResponses converts a slice of Consultation entities
// to patient-facing DTOs
func ConsultationsToPatientResponses(consultations []entity.Consultation) []dto.PatientConsultationResponse {
	responses := make([]dto.PatientConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = *ConsultationToPatientResponse(&consultation)
	}
	return responses
}
