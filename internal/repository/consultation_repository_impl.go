package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	domainRepo "github.com/sagarmamodia/RemediX/internal/domain/repository"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

// CreateWithPayment writes the payment row and the consultation referencing it
// in one transaction, so a consultation never exists without its payment.
func (r *consultationRepository) CreateWithPayment(ctx context.Context, db *gorm.DB, payment *entity.Payment, consultation *entity.Consultation) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		consultation.PaymentID = payment.ID
		return tx.Create(consultation).Error
	})
}

func (r *consultationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.WithContext(ctx).Preload("Doctor").Preload("Patient").
		Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, entity.ConsultationStatusPending).
		Order("start_time ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindPendingByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, entity.ConsultationStatusPending).
		Order("start_time ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindAllByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("start_time DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindAllByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) CountPendingByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("doctor_id = ? AND status = ?", doctorID, entity.ConsultationStatusPending).
		Count(&count).Error
	return count, err
}

func (r *consultationRepository) UpdateSlot(ctx context.Context, db *gorm.DB, id uuid.UUID, start, end time.Time) error {
	return db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"start_time": start, "end_time": end}).Error
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.ConsultationStatus) error {
	return db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *consultationRepository) AttachRoom(ctx context.Context, db *gorm.DB, id uuid.UUID, roomID string) error {
	return db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("room_id", roomID).Error
}

func (r *consultationRepository) RemoveRoom(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("room_id", nil).Error
}

func (r *consultationRepository) AttachPrescription(ctx context.Context, db *gorm.DB, id uuid.UUID, url string) error {
	return db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("prescription_url", url).Error
}
