package models

import "time"

// Transaction is an immutable purchase record. TransactionID is the external
// payment-provider id; the unique index is what makes webhook redelivery safe.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          string    `gorm:"index" json:"userId"`
	CourseID        string    `gorm:"index" json:"courseId"`
	TransactionID   string    `gorm:"uniqueIndex" json:"transactionId"`
	PaymentProvider string    `json:"paymentProvider"`
	Amount          int64     `json:"amount"` // cents
	DateTime        time.Time `json:"dateTime"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
