package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/domain/repository"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// AvailabilityUsecase answers whether a candidate slot is free for a doctor
// or a patient. All window comparisons are half-open: [start, end) windows
// that merely touch at a boundary do not conflict.
type AvailabilityUsecase interface {
	IsDoctorFree(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error)
	IsPatientFree(ctx context.Context, patientID uuid.UUID, start, end time.Time) (bool, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clock            *clock.Clock
	doctorRepo       repository.DoctorRepository
	consultationRepo repository.ConsultationRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk *clock.Clock,
	doctorRepo repository.DoctorRepository,
	consultationRepo repository.ConsultationRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		clock:            clk,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
	}
}

// IsDoctorFree reports whether the doctor can take [start, end): the window
// must sit inside one of the doctor's shifts for that clinic-local weekday,
// and no pending consultation of the doctor may overlap it. A missing doctor
// yields false rather than an error so callers fail closed.
func (u *availabilityUsecase) IsDoctorFree(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return false, err
	}
	if doctor == nil {
		return false, nil
	}

	day, startMinutes := u.clock.Localize(start)
	_, endMinutes := u.clock.Localize(end)

	inShift := false
	for _, shift := range doctor.Shifts {
		if shift.Contains(day, startMinutes, endMinutes) {
			inShift = true
			break
		}
	}
	if !inShift {
		return false, nil
	}

	consultations, err := u.consultationRepo.FindPendingByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load pending consultations for doctor %s: %+v", doctorID, err)
		return false, err
	}

	for i := range consultations {
		if consultations[i].Overlaps(start, end) {
			return false, nil
		}
	}

	return true, nil
}

// IsPatientFree reports whether the patient has no pending consultation
// overlapping [start, end). Patients have no shifts, so only overlap applies.
func (u *availabilityUsecase) IsPatientFree(ctx context.Context, patientID uuid.UUID, start, end time.Time) (bool, error) {
	consultations, err := u.consultationRepo.FindPendingByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to load pending consultations for patient %s: %+v", patientID, err)
		return false, err
	}

	for i := range consultations {
		if consultations[i].Overlaps(start, end) {
			return false, nil
		}
	}

	return true, nil
}
