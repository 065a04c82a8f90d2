package models

import "time"

// Invoice es la factura opcional ligada uno-a-uno a un pago.
type Invoice struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PaymentID    uint   `gorm:"not null;uniqueIndex" json:"pagoId"`
	BusinessName string `gorm:"type:varchar(100);not null" json:"razonSocial"`
	TaxID        string `gorm:"type:varchar(20);not null" json:"nit"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
