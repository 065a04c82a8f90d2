package models

import "time"

// Estados de ocupacion de una mesa
const (
	TableFree     = "libre"
	TableOccupied = "ocupada"
	TableReserved = "reservada"
)

type Table struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Number   int    `gorm:"not null;uniqueIndex" json:"numero"`
	Capacity int    `gorm:"not null;default:4" json:"capacidad"`
	Status   string `gorm:"type:varchar(20);not null;default:'libre'" json:"estado"`
	// Version se compara-e-incrementa en cada cambio de estado para que dos
	// asignaciones concurrentes no puedan ocupar la misma mesa.
	Version   uint      `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidTableStatus verifica que el estado pertenezca al conjunto permitido.
func ValidTableStatus(status string) bool {
	switch status {
	case TableFree, TableOccupied, TableReserved:
		return true
	}
	return false
}
