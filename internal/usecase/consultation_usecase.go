package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/converter"
	"github.com/sagarmamodia/RemediX/internal/delivery/dto"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	"github.com/sagarmamodia/RemediX/internal/domain/repository"
	"github.com/sagarmamodia/RemediX/internal/service"
)

var (
	ErrNotParticipant = errors.New("you are not a participant of this consultation")
	ErrJoinTooEarly   = errors.New("the room opens ten minutes before the consultation starts")
)

// joinWindow is how long before the scheduled start participants may enter
// the video room.
const joinWindow = 10 * time.Minute

// RoomService abstracts the video-room provider.
type RoomService interface {
	CreateRoom(ctx context.Context) (string, error)
	DeactivateRoom(ctx context.Context, roomID string) error
	Token() (string, error)
}

type ConsultationUsecase interface {
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ConsultationListResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientConsultationListResponse, error)
	GetForDoctor(ctx context.Context, doctorID, consultationID uuid.UUID) (*dto.ConsultationResponse, error)
	GetForPatient(ctx context.Context, patientID, consultationID uuid.UUID) (*dto.PatientConsultationResponse, error)
	Join(ctx context.Context, userID, consultationID uuid.UUID) (*dto.JoinConsultationResponse, error)
	Complete(ctx context.Context, doctorID, consultationID uuid.UUID) error
	AttachPrescription(ctx context.Context, doctorID, consultationID uuid.UUID, req *dto.AttachPrescriptionRequest) error
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	rooms            RoomService
	notifier         service.Notifier

	now func() time.Time
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	rooms RoomService,
	notifier service.Notifier,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		rooms:            rooms,
		notifier:         notifier,
		now:              time.Now,
	}
}

// ListForDoctor returns the doctor's consultations with patient details.
func (u *consultationUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindAllByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list consultations for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// ListForPatient returns the patient's consultations with doctor details.
func (u *consultationUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindAllByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list consultations for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PatientConsultationListResponse{
		Consultations: converter.ConsultationsToPatientResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// GetForDoctor returns one of the doctor's consultations by id.
func (u *consultationUsecase) GetForDoctor(ctx context.Context, doctorID, consultationID uuid.UUID) (*dto.ConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.DoctorID != doctorID {
		return nil, ErrNotParticipant
	}

	return converter.ConsultationToResponse(consultation), nil
}

// GetForPatient returns one of the patient's consultations by id.
func (u *consultationUsecase) GetForPatient(ctx context.Context, patientID, consultationID uuid.UUID) (*dto.PatientConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.PatientID != patientID {
		return nil, ErrNotParticipant
	}

	return converter.ConsultationToPatientResponse(consultation), nil
}

// Join hands out the video room and an access token for it. The room is
// created lazily by whichever participant arrives first; it opens ten
// minutes before the scheduled start.
func (u *consultationUsecase) Join(ctx context.Context, userID, consultationID uuid.UUID) (*dto.JoinConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.DoctorID != userID && consultation.PatientID != userID {
		return nil, ErrNotParticipant
	}
	if !consultation.IsPending() {
		return nil, ErrConsultationNotPending
	}
	if consultation.StartTime.Sub(u.now()) > joinWindow {
		return nil, ErrJoinTooEarly
	}

	roomID := ""
	if consultation.RoomID != nil {
		roomID = *consultation.RoomID
	} else {
		roomID, err = u.rooms.CreateRoom(ctx)
		if err != nil {
			u.log.Warnf("Failed to create room for consultation %s: %+v", consultationID, err)
			return nil, err
		}
		if err := u.consultationRepo.AttachRoom(ctx, u.db, consultationID, roomID); err != nil {
			u.log.Warnf("Failed to attach room %s to consultation %s: %+v", roomID, consultationID, err)
			return nil, err
		}
	}

	token, err := u.rooms.Token()
	if err != nil {
		u.log.Warnf("Failed to mint room token for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	return &dto.JoinConsultationResponse{RoomID: roomID, Token: token}, nil
}

// Complete marks a consultation as done. Only the consulting doctor may do
// it. An active room is deactivated first so stale links stop working.
func (u *consultationUsecase) Complete(ctx context.Context, doctorID, consultationID uuid.UUID) error {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}
	if consultation.DoctorID != doctorID {
		return ErrNotConsultationOwner
	}
	if !consultation.IsPending() {
		return ErrConsultationNotPending
	}

	if consultation.RoomID != nil {
		if err := u.rooms.DeactivateRoom(ctx, *consultation.RoomID); err != nil {
			// Room teardown is best-effort: the room expires on its own.
			u.log.Warnf("Failed to deactivate room %s: %+v", *consultation.RoomID, err)
		}
		if err := u.consultationRepo.RemoveRoom(ctx, u.db, consultationID); err != nil {
			u.log.Warnf("Failed to clear room on consultation %s: %+v", consultationID, err)
			return err
		}
	}

	if err := u.consultationRepo.UpdateStatus(ctx, u.db, consultationID, entity.ConsultationStatusCompleted); err != nil {
		u.log.Warnf("Failed to complete consultation %s: %+v", consultationID, err)
		return err
	}

	u.notifier.ConsultationCompleted(ctx, service.ConsultationCompleted{ConsultationID: consultationID})
	return nil
}

// AttachPrescription stores the prescription document URL on a consultation.
func (u *consultationUsecase) AttachPrescription(ctx context.Context, doctorID, consultationID uuid.UUID, req *dto.AttachPrescriptionRequest) error {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}
	if consultation.DoctorID != doctorID {
		return ErrNotConsultationOwner
	}

	if err := u.consultationRepo.AttachPrescription(ctx, u.db, consultationID, req.PrescriptionURL); err != nil {
		u.log.Warnf("Failed to attach prescription to consultation %s: %+v", consultationID, err)
		return err
	}

	return nil
}
