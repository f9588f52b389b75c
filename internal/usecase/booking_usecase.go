package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/domain/repository"
	"github.com/sagarmamodia/RemediX/internal/integrations/square"
	"github.com/sagarmamodia/RemediX/internal/service"
	"github.com/sagarmamodia/RemediX/pkg/metrics"
)

var (
	ErrSlotUnavailable        = errors.New("slot is not available for this doctor")
	ErrPatientUnavailable     = errors.New("you already have a consultation in this window")
	ErrFeeNotSet              = errors.New("doctor has not set a consultation fee")
	ErrPaymentDeclined        = errors.New("payment was declined")
	ErrConsultationNotFound   = errors.New("consultation not found")
	ErrConsultationNotPending = errors.New("consultation is no longer pending")
	ErrNotConsultationOwner   = errors.New("consultation does not belong to you")
	ErrRescheduleTooLate      = errors.New("consultations can only be rescheduled up to one hour before they start")
)

// rescheduleCutoff is the minimum lead time before a consultation's start
// at which rescheduling is still allowed.
const rescheduleCutoff = time.Hour

// PaymentGateway abstracts the payment provider so booking flows can be
// tested without network calls.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, sourceID string, amount int64, idempotencyKey string) (*square.Charge, error)
	RefundPayment(ctx context.Context, paymentID string, amount int64, idempotencyKey string) error
}

type BookingUsecase interface {
	BookSlot(ctx context.Context, patientID uuid.UUID, req *dto.BookSlotRequest) (*dto.BookSlotResponse, error)
	CheckSlot(ctx context.Context, patientID uuid.UUID, req *dto.CheckSlotRequest) (*dto.CheckSlotResponse, error)
	Reschedule(ctx context.Context, patientID uuid.UUID, req *dto.RescheduleRequest) error
}

type bookingUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clock            *clock.Clock
	availability     AvailabilityUsecase
	doctorRepo       repository.DoctorRepository
	consultationRepo repository.ConsultationRepository
	payments         PaymentGateway
	slotLocks        *service.SlotLockService
	notifier         service.Notifier
	metrics          *metrics.Metrics

	now func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk *clock.Clock,
	availability AvailabilityUsecase,
	doctorRepo repository.DoctorRepository,
	consultationRepo repository.ConsultationRepository,
	payments PaymentGateway,
	slotLocks *service.SlotLockService,
	notifier service.Notifier,
	m *metrics.Metrics,
) BookingUsecase {
	return &bookingUsecase{
		db:               db,
		log:              log,
		clock:            clk,
		availability:     availability,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
		payments:         payments,
		slotLocks:        slotLocks,
		notifier:         notifier,
		metrics:          m,
		now:              time.Now,
	}
}

// BookSlot books a paid consultation slot.
//
// Flow:
// 1. Validate the candidate window (aligned, 30 minutes, not in the past)
// 2. Load the doctor, reject if unknown or not accepting bookings
// 3. Take the per-doctor slot lock for the check-then-insert section
// 4. Check doctor and patient availability, then that the fee is set
// 5. Charge the fee with a fresh idempotency key
// 6. Persist payment + consultation in one transaction
// 7. If persistence fails -> compensate: refund the captured charge
// 8. Publish the booked event after commit
func (u *bookingUsecase) BookSlot(ctx context.Context, patientID uuid.UUID, req *dto.BookSlotRequest) (*dto.BookSlotResponse, error) {
	slot := entity.CandidateSlot{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := slot.Validate(u.clock, u.now()); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.Available {
		return nil, ErrSlotUnavailable
	}

	// The lock covers availability check through DB insert so two requests
	// for the same doctor cannot both pass the check. The EXCLUDE constraint
	// on consultations backs this up across processes.
	u.slotLocks.Lock(req.DoctorID)
	defer u.slotLocks.Unlock(req.DoctorID)

	doctorFree, err := u.availability.IsDoctorFree(ctx, req.DoctorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !doctorFree {
		u.metrics.SlotConflictsTotal.Inc()
		return nil, ErrSlotUnavailable
	}

	patientFree, err := u.availability.IsPatientFree(ctx, patientID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !patientFree {
		u.metrics.SlotConflictsTotal.Inc()
		return nil, ErrPatientUnavailable
	}

	if doctor.Fee <= 0 {
		return nil, ErrFeeNotSet
	}

	// A fresh key per attempt: a retried request is a new charge attempt,
	// never a replay of an earlier one.
	idempotencyKey := uuid.New().String()

	charge, err := u.payments.CreatePayment(ctx, req.SourceID, doctor.Fee, idempotencyKey)
	if err != nil {
		u.metrics.PaymentFailuresTotal.Inc()
		if errors.Is(err, square.ErrChargeDeclined) {
			return nil, ErrPaymentDeclined
		}
		u.log.Warnf("Charge failed for doctor %s patient %s: %+v", req.DoctorID, patientID, err)
		return nil, err
	}

	payment := &entity.Payment{
		ProviderPaymentID: charge.ID,
		Amount:            charge.Amount,
	}
	consultation := &entity.Consultation{
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Fee:       doctor.Fee,
		Symptoms:  req.Symptoms,
		Status:    entity.ConsultationStatusPending,
	}

	if err := u.consultationRepo.CreateWithPayment(ctx, u.db, payment, consultation); err != nil {
		u.log.Errorf("Failed to persist consultation, compensating charge %s: %+v", charge.ID, err)

		// COMPENSATE - the charge is already captured, so refund it. Uses a
		// fresh context: the request context may already be cancelled.
		refundCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if refundErr := u.payments.RefundPayment(refundCtx, charge.ID, charge.Amount, uuid.New().String()); refundErr != nil {
			u.log.Errorf("CRITICAL: Failed to refund charge %s after persist failure: %+v", charge.ID, refundErr)
		}

		return nil, err
	}

	u.metrics.BookingsTotal.Inc()
	u.notifier.ConsultationBooked(ctx, service.ConsultationBooked{
		ConsultationID: consultation.ID,
		DoctorID:       req.DoctorID,
		PatientID:      patientID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Fee:            doctor.Fee,
	})

	return &dto.BookSlotResponse{
		ConsultationID: consultation.ID,
		PaymentID:      payment.ID,
		DoctorID:       req.DoctorID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Fee:            doctor.Fee,
		Status:         string(consultation.Status),
	}, nil
}

// CheckSlot probes availability without reserving or charging anything. The
// answer is advisory: the slot can be taken between the probe and a booking.
func (u *bookingUsecase) CheckSlot(ctx context.Context, patientID uuid.UUID, req *dto.CheckSlotRequest) (*dto.CheckSlotResponse, error) {
	slot := entity.CandidateSlot{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := slot.Validate(u.clock, u.now()); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.Available {
		return &dto.CheckSlotResponse{Available: false}, nil
	}

	doctorFree, err := u.availability.IsDoctorFree(ctx, req.DoctorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !doctorFree {
		return &dto.CheckSlotResponse{Available: false}, nil
	}

	patientFree, err := u.availability.IsPatientFree(ctx, patientID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	return &dto.CheckSlotResponse{Available: patientFree}, nil
}

// Reschedule moves a pending consultation to a new window. The patient on
// the new window is always the one stored on the consultation record, never
// taken from the request. No money moves: the original payment stands.
func (u *bookingUsecase) Reschedule(ctx context.Context, patientID uuid.UUID, req *dto.RescheduleRequest) error {
	slot := entity.CandidateSlot{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := slot.Validate(u.clock, u.now()); err != nil {
		return err
	}

	consultation, err := u.consultationRepo.FindByID(ctx, u.db, req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", req.ConsultationID, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}
	if consultation.PatientID != patientID {
		return ErrNotConsultationOwner
	}
	if !consultation.IsPending() {
		return ErrConsultationNotPending
	}

	// The cutoff is measured against the current start time, not the new one.
	if consultation.StartTime.Sub(u.now()) < rescheduleCutoff {
		return ErrRescheduleTooLate
	}

	u.slotLocks.Lock(consultation.DoctorID)
	defer u.slotLocks.Unlock(consultation.DoctorID)

	doctorFree, err := u.availability.IsDoctorFree(ctx, consultation.DoctorID, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}
	if !doctorFree {
		u.metrics.SlotConflictsTotal.Inc()
		return ErrSlotUnavailable
	}

	patientFree, err := u.availability.IsPatientFree(ctx, consultation.PatientID, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}
	if !patientFree {
		u.metrics.SlotConflictsTotal.Inc()
		return ErrPatientUnavailable
	}

	if err := u.consultationRepo.UpdateSlot(ctx, u.db, consultation.ID, req.StartTime, req.EndTime); err != nil {
		u.log.Warnf("Failed to update slot for consultation %s: %+v", consultation.ID, err)
		return err
	}

	u.notifier.ConsultationRescheduled(ctx, service.ConsultationRescheduled{
		ConsultationID: consultation.ID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	})

	return nil
}
