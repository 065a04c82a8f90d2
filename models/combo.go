package models

import "time"

// Combo agrupa varios productos bajo un precio propio.
type Combo struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"nombre"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"precio"`
	Description string  `gorm:"type:text" json:"descripcion"`
	Available   bool    `gorm:"not null;default:true" json:"disponible"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ComboItem es un producto componente de un combo.
type ComboItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ComboID   uint    `gorm:"not null;index" json:"comboId"`
	Combo     Combo   `gorm:"foreignKey:ComboID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null" json:"platoId"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"plato"`
	Quantity  int     `gorm:"not null;default:1" json:"cantidad"`
}
