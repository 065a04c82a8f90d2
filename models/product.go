package models

import "time"

// Tipos de producto del catalogo
const (
	ProductDish  = "plato"
	ProductDrink = "bebida"
)

// Product es un plato o bebida del catalogo. Su precio es la fuente
// autoritativa para calcular totales de pedido.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"nombre"`
	Kind        string  `gorm:"type:varchar(20);not null;default:'plato'" json:"tipo"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"precio"`
	Description string  `gorm:"type:text" json:"descripcion"`
	Available   bool    `gorm:"not null;default:true" json:"disponible"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidProductKind verifica el tipo de producto.
func ValidProductKind(kind string) bool {
	return kind == ProductDish || kind == ProductDrink
}
