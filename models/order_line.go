package models

import "time"

// Estados de preparacion de una linea en cocina
const (
	LinePending   = "pendiente"
	LineInPrep    = "en preparacion"
	LineDelivered = "entregado"
)

// Tipos de linea dentro de un pedido
const (
	LineKindProduct = "plato"
	LineKindCombo   = "combo"
)

// ProductLine es una linea de producto (plato o bebida) dentro de un pedido.
type ProductLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"pedidoId"`
	Order     Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null" json:"platoId"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"plato"`
	Quantity  int     `gorm:"not null" json:"cantidad"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"precioUnitario"`
	Status    string  `gorm:"type:varchar(20);not null;default:'pendiente'" json:"estado"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ComboLine es una linea de combo dentro de un pedido.
type ComboLine struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"pedidoId"`
	Order     Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ComboID   uint    `gorm:"not null" json:"comboId"`
	Combo     Combo   `gorm:"foreignKey:ComboID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"combo"`
	Quantity  int     `gorm:"not null" json:"cantidad"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"precioUnitario"`
	Status    string  `gorm:"type:varchar(20);not null;default:'pendiente'" json:"estado"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// lineTransitions enumera las transiciones de cocina: avanzar, pausar y
// reabrir. Se mantiene permisiva en ambas direcciones para que cocina pueda
// corregir errores linea por linea.
var lineTransitions = map[string][]string{
	LinePending:   {LineInPrep},
	LineInPrep:    {LineDelivered, LinePending},
	LineDelivered: {LineInPrep},
}

// CanTransitionLine responde si una linea puede pasar de from a to.
func CanTransitionLine(from, to string) bool {
	for _, next := range lineTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
