package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/middleware"
	"github.com/sagarmamodia/RemediX/internal/usecase"
	"github.com/sagarmamodia/RemediX/pkg/response"
	"github.com/sagarmamodia/RemediX/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// ListForDoctor returns the authenticated doctor's consultations
// @Summary List doctor consultations
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/consultations [get]
func (h *ConsultationHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultations, err := h.consultationUsecase.ListForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

// ListForPatient returns the authenticated patient's consultations
// @Summary List patient consultations
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/consultations [get]
func (h *ConsultationHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultations, err := h.consultationUsecase.ListForPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

// GetForDoctor returns one of the doctor's consultations
// @Summary Get a consultation (doctor view)
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /doctor/consultations/{id} [get]
func (h *ConsultationHandler) GetForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.GetForDoctor(r.Context(), doctorID, consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "Consultation does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

// GetForPatient returns one of the patient's consultations
// @Summary Get a consultation (patient view)
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /patient/consultations/{id} [get]
func (h *ConsultationHandler) GetForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.GetForPatient(r.Context(), patientID, consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "Consultation does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

// Join hands out the video room and token for a consultation
// @Summary Join a consultation room
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /consultations/{id}/join [post]
func (h *ConsultationHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	room, err := h.consultationUsecase.Join(r.Context(), userID, consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "You are not a participant of this consultation")
		case usecase.ErrConsultationNotPending:
			response.Conflict(w, "Consultation is no longer pending")
		case usecase.ErrJoinTooEarly:
			response.Error(w, http.StatusUnprocessableEntity, "The room opens ten minutes before the consultation starts", nil)
		default:
			response.InternalServerError(w, "Failed to join consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Room ready", room)
}

// Complete marks a consultation as done
// @Summary Complete a consultation
// @Tags Consultations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Consultation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /doctor/consultations/{id}/complete [post]
func (h *ConsultationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	err = h.consultationUsecase.Complete(r.Context(), doctorID, consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrConsultationNotPending:
			response.Conflict(w, "Consultation is already completed")
		default:
			response.InternalServerError(w, "Failed to complete consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation completed successfully", nil)
}

// AttachPrescription stores a prescription document URL on a consultation
// @Summary Attach a prescription
// @Tags Consultations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Consultation ID"
// @Param request body dto.AttachPrescriptionRequest true "Attach Prescription Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /doctor/consultations/{id}/prescription [post]
func (h *ConsultationHandler) AttachPrescription(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.AttachPrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.consultationUsecase.AttachPrescription(r.Context(), doctorID, consultationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		default:
			response.InternalServerError(w, "Failed to attach prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription attached successfully", nil)
}
