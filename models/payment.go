package models

import "time"

// Metodos de pago aceptados
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentQR       = "qr"
	PaymentTransfer = "transferencia"
)

// Payment registra el pago final de un pedido. Es inmutable una vez creado.
type Payment struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Method string    `gorm:"type:varchar(30);not null" json:"tipo"`
	Amount float64   `gorm:"type:decimal(10,2);not null" json:"monto"`
	PaidAt time.Time `gorm:"not null" json:"fechaHora"`

	Invoice *Invoice `gorm:"foreignKey:PaymentID" json:"factura,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidPaymentMethod verifica el metodo de pago.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentQR, PaymentTransfer:
		return true
	}
	return false
}
