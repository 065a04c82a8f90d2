package database

import (
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

// AutoMigrate crea/actualiza el esquema completo.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.Product{},
		&models.Combo{},
		&models.ComboItem{},
		&models.Order{},
		&models.ProductLine{},
		&models.ComboLine{},
		&models.Payment{},
		&models.Invoice{},
	)
}

// Normalize corrige filas heredadas de esquemas anteriores.
func Normalize(db *gorm.DB) {
	// Mesas sin estado valido quedan libres.
	if err := db.Exec("UPDATE tables SET status = ? WHERE status IS NULL OR status = ''",
		models.TableFree).Error; err != nil {
		utils.ErrorLogger.Printf("Error normalizing table status: %v", err)
	}

	// Pedidos entregados sin fecha de entrega heredan la del pedido.
	if err := db.Exec("UPDATE orders SET delivered_at = ordered_at WHERE status = ? AND delivered_at IS NULL",
		models.OrderDelivered).Error; err != nil {
		utils.ErrorLogger.Printf("Error backfilling delivery timestamps: %v", err)
	}
}
