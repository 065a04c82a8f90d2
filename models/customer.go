package models

import "time"

// Customer es el registro de clientes, identificados por su CI.
type Customer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	CI      string `gorm:"type:varchar(20);not null;uniqueIndex" json:"ci"`
	Name    string `gorm:"type:varchar(100);not null" json:"nombre"`
	Phone   string `gorm:"type:varchar(30)" json:"telefono"`
	Address string `gorm:"type:varchar(200)" json:"direccion"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
