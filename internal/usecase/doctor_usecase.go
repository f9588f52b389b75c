package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/converter"
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/domain/repository"
)

var ErrHasPendingConsultations = errors.New("availability cannot be turned off while consultations are pending")

type DoctorUsecase interface {
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, req *dto.ListDoctorsRequest) (*dto.DoctorListResponse, error)
	FindInstantDoctors(ctx context.Context, req *dto.InstantDoctorsRequest) (*dto.DoctorListResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	SetAvailability(ctx context.Context, doctorID uuid.UUID, available bool) error
}

type doctorUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clock            *clock.Clock
	doctorRepo       repository.DoctorRepository
	consultationRepo repository.ConsultationRepository

	now func() time.Time
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk *clock.Clock,
	doctorRepo repository.DoctorRepository,
	consultationRepo repository.ConsultationRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		clock:            clk,
		doctorRepo:       doctorRepo,
		consultationRepo: consultationRepo,
		now:              time.Now,
	}
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, req *dto.ListDoctorsRequest) (*dto.DoctorListResponse, error) {
	filter := entity.DoctorFilter{
		Specialty: req.Specialty,
		Name:      req.Name,
		MinFee:    req.MinFee,
		MaxFee:    req.MaxFee,
		Available: req.Available,
	}

	doctors, err := u.doctorRepo.FindAll(ctx, u.db, &filter)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// FindInstantDoctors returns every available doctor of a specialty whose
// shifts cover the window and who has no pending consultation overlapping
// it. The set join happens in one SQL query, not per doctor.
func (u *doctorUsecase) FindInstantDoctors(ctx context.Context, req *dto.InstantDoctorsRequest) (*dto.DoctorListResponse, error) {
	slot := entity.CandidateSlot{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := slot.Validate(u.clock, u.now()); err != nil {
		return nil, err
	}

	day, startMinutes := u.clock.Localize(req.StartTime)
	_, endMinutes := u.clock.Localize(req.EndTime)

	doctors, err := u.doctorRepo.FindAvailableForSlot(ctx, u.db, req.Specialty, day, startMinutes, endMinutes, req.StartTime, req.EndTime)
	if err != nil {
		u.log.Warnf("Failed to find instant doctors for %s: %+v", req.Specialty, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.Fee != nil {
		doctor.Fee = *req.Fee
	}
	if req.ProfileURL != "" {
		doctor.ProfileURL = req.ProfileURL
	}

	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// SetAvailability flips the doctor's booking switch. The toggle is refused
// in either direction while pending consultations exist so booked patients
// are never stranded mid-schedule.
func (u *doctorUsecase) SetAvailability(ctx context.Context, doctorID uuid.UUID, available bool) error {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if doctor.Available != available {
		pending, err := u.consultationRepo.CountPendingByDoctorID(ctx, u.db, doctorID)
		if err != nil {
			u.log.Warnf("Failed to count pending consultations for doctor %s: %+v", doctorID, err)
			return err
		}
		if pending > 0 {
			return ErrHasPendingConsultations
		}
	}

	if err := u.doctorRepo.UpdateAvailability(ctx, u.db, doctorID, available); err != nil {
		u.log.Warnf("Failed to set availability for doctor %s: %+v", doctorID, err)
		return err
	}

	return nil
}
