package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

type ConsultationRepository interface {
	// CreateWithPayment persists the payment record and the consultation
	// referencing it in a single transaction. The payment row is written
	// first; the consultation must not exist without it.
	CreateWithPayment(ctx context.Context, db *gorm.DB, payment *entity.Payment, consultation *entity.Consultation) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	FindPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	FindPendingByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error)
	FindAllByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	FindAllByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error)
	CountPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error)
	UpdateSlot(ctx context.Context, db *gorm.DB, id uuid.UUID, start, end time.Time) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.ConsultationStatus) error
	AttachRoom(ctx context.Context, db *gorm.DB, id uuid.UUID, roomID string) error
	RemoveRoom(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	AttachPrescription(ctx context.Context, db *gorm.DB, id uuid.UUID, url string) error
}
