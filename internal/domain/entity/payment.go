package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a captured charge at the payment provider. A consultation
// always references a payment row; the row is written in the same transaction
// as the consultation, after the provider confirms the charge.
type Payment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderPaymentID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"provider_payment_id"`
	Amount            int64     `gorm:"not null" json:"amount"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
