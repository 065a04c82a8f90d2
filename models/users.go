package models

import "time"

// Roles del personal
const (
	RoleAdmin   = "admin"
	RoleWaiter  = "mesero"
	RoleKitchen = "cocina"
	RoleCashier = "caja"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'mesero'" json:"rol"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidRole verifica el rol del usuario.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWaiter, RoleKitchen, RoleCashier:
		return true
	}
	return false
}
