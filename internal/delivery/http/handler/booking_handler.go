package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/middleware"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/integrations/square"
	"github.com/sagarmamodia/RemediX/internal/usecase"
	"github.com/sagarmamodia/RemediX/pkg/response"
	"github.com/sagarmamodia/RemediX/pkg/validator"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// BookSlot books a consultation slot and charges the doctor's fee
// @Summary Book a consultation slot
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookSlotRequest true "Book Slot Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/bookings [post]
func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.BookSlot(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case entity.ErrSlotInverted, entity.ErrSlotCrossesDay, entity.ErrSlotWrongDuration, entity.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrFeeNotSet:
			response.Error(w, http.StatusUnprocessableEntity, "Doctor has not set a consultation fee", nil)
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "Slot is not available for this doctor")
		case usecase.ErrPatientUnavailable:
			response.Conflict(w, "You already have a consultation in this window")
		case usecase.ErrPaymentDeclined:
			response.PaymentRequired(w, "Payment was declined")
		default:
			// The provider wraps its sentinel with call context.
			if errors.Is(err, square.ErrUnavailable) {
				response.Error(w, http.StatusBadGateway, "Payment provider is unavailable, no money was taken", nil)
				return
			}
			response.InternalServerError(w, "Failed to book slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot booked successfully", booking)
}

// CheckSlot probes whether a slot could be booked right now
// @Summary Check slot availability
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckSlotRequest true "Check Slot Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patient/bookings/check [post]
func (h *BookingHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CheckSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingUsecase.CheckSlot(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case entity.ErrSlotInverted, entity.ErrSlotCrossesDay, entity.ErrSlotWrongDuration, entity.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to check slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot checked successfully", result)
}

// Reschedule moves a pending consultation to a new slot
// @Summary Reschedule a consultation
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Consultation ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/bookings/{id}/reschedule [put]
func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.ConsultationID = consultationID

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.bookingUsecase.Reschedule(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case entity.ErrSlotInverted, entity.ErrSlotCrossesDay, entity.ErrSlotWrongDuration, entity.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrConsultationNotPending:
			response.Conflict(w, "Consultation is no longer pending")
		case usecase.ErrRescheduleTooLate:
			response.Error(w, http.StatusUnprocessableEntity, "Consultations can only be rescheduled up to one hour before they start", nil)
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "Slot is not available for this doctor")
		case usecase.ErrPatientUnavailable:
			response.Conflict(w, "You already have a consultation in this window")
		default:
			response.InternalServerError(w, "Failed to reschedule consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation rescheduled successfully", nil)
}
