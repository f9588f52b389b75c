package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient account.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Gender      string    `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	ProfileURL  string    `gorm:"type:text" json:"profile_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
