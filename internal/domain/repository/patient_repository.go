package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
}
