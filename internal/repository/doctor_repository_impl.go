package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
	domainRepo "github.com/sagarmamodia/RemediX/internal/domain/repository"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("Shifts").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	query := db.WithContext(ctx).Model(&entity.Doctor{})

	if filter != nil {
		if filter.Specialty != "" {
			query = query.Where("specialty = ?", filter.Specialty)
		}
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.MinFee != nil {
			query = query.Where("fee >= ?", *filter.MinFee)
		}
		if filter.MaxFee != nil {
			query = query.Where("fee <= ?", *filter.MaxFee)
		}
		if filter.Available != nil {
			query = query.Where("available = ?", *filter.Available)
		}
	}

	var doctors []entity.Doctor
	err := query.Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindAvailableForSlot is the instant-match query: a set-based join instead of
// per-doctor sequential checks. A doctor qualifies when a shift fully contains
// the window and no pending consultation overlaps it (half-open semantics).
func (r *doctorRepository) FindAvailableForSlot(ctx context.Context, db *gorm.DB, specialty string, day clock.Weekday, startMin, endMin int, start, end time.Time) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Model(&entity.Doctor{}).
		Distinct("doctors.*").
		Joins("JOIN shifts ON shifts.doctor_id = doctors.id").
		Where("doctors.specialty = ? AND doctors.available = ?", specialty, true).
		Where("shifts.day_of_week = ? AND shifts.start_time <= ? AND shifts.end_time >= ?", day, startMin, endMin).
		Where(`NOT EXISTS (
			SELECT 1 FROM consultations
			WHERE consultations.doctor_id = doctors.id
			  AND consultations.status = ?
			  AND consultations.start_time < ?
			  AND consultations.end_time > ?
		)`, entity.ConsultationStatusPending, end, start).
		Order("doctors.name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("Shifts").Save(doctor).Error
}

func (r *doctorRepository) UpdateAvailability(ctx context.Context, db *gorm.DB, id uuid.UUID, available bool) error {
	return db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ?", id).
		Update("available", available).Error
}
