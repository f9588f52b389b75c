package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sagarmamodia/RemediX/internal/clock"
	"github.com/sagarmamodia/RemediX/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	// FindAvailableForSlot runs the instant-match query: doctors of the given
	// specialty, accepting bookings, with a shift containing the window and no
	// pending consultation overlapping [start, end).
	FindAvailableForSlot(ctx context.Context, db *gorm.DB, specialty string, day clock.Weekday, startMin, endMin int, start, end time.Time) ([]entity.Doctor, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	UpdateAvailability(ctx context.Context, db *gorm.DB, id uuid.UUID, available bool) error
}
