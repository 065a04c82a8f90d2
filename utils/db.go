package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB guarda la conexion para los componentes que no la reciben inyectada.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB devuelve la conexion compartida.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
