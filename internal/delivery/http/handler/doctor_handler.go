package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/middleware"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/usecase"
	"github.com/sagarmamodia/RemediX/pkg/response"
	"github.com/sagarmamodia/RemediX/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// GetDoctor returns a doctor's public profile with shifts
// @Summary Get doctor by ID
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// ListDoctors lists doctors filtered by query parameters
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param specialty query string false "Specialty"
// @Param name query string false "Name substring"
// @Param min_fee query int false "Minimum fee in cents"
// @Param max_fee query int false "Maximum fee in cents"
// @Param available query bool false "Only doctors accepting bookings"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	req := dto.ListDoctorsRequest{
		Specialty: r.URL.Query().Get("specialty"),
		Name:      r.URL.Query().Get("name"),
	}

	if raw := r.URL.Query().Get("min_fee"); raw != "" {
		fee, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid min_fee", nil)
			return
		}
		req.MinFee = &fee
	}
	if raw := r.URL.Query().Get("max_fee"); raw != "" {
		fee, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid max_fee", nil)
			return
		}
		req.MaxFee = &fee
	}
	if raw := r.URL.Query().Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid available flag", nil)
			return
		}
		req.Available = &available
	}

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// FindInstantDoctors lists doctors who can take the given slot right now
// @Summary Find doctors free for a slot
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.InstantDoctorsRequest true "Instant Doctors Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/instant [post]
func (h *DoctorHandler) FindInstantDoctors(w http.ResponseWriter, r *http.Request) {
	var req dto.InstantDoctorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctors, err := h.doctorUsecase.FindInstantDoctors(r.Context(), &req)
	if err != nil {
		switch err {
		case entity.ErrSlotInverted, entity.ErrSlotCrossesDay, entity.ErrSlotWrongDuration, entity.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to find doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// UpdateProfile updates the authenticated doctor's profile
// @Summary Update doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Response
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", doctor)
}

// SetAvailability flips the authenticated doctor's booking switch
// @Summary Set doctor availability
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetAvailabilityRequest true "Set Availability Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/availability [patch]
func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.doctorUsecase.SetAvailability(r.Context(), doctorID, *req.Available)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrHasPendingConsultations:
			response.Conflict(w, "Availability cannot be turned off while consultations are pending")
		default:
			response.InternalServerError(w, "Failed to set availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", nil)
}
