package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/apperr"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
)

// OrderService concentra las reglas de consistencia pedido/mesa: cada
// operacion corre dentro de una sola transaccion que valida la precondicion
// y escribe sobre las entidades afectadas de forma atomica.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// LineInput es una linea entrante: referencia al catalogo + cantidad.
type LineInput struct {
	RefID    uint `json:"id" binding:"required"`
	Quantity int  `json:"cantidad" binding:"required"`
}

// CreateOrder abre un pedido nuevo para un cliente verificado.
func (s *OrderService) CreateOrder(kind, customerCI string, waiterID, tableID *uint) (*models.Order, error) {
	if !models.ValidOrderKind(kind) {
		return nil, apperr.Validation("tipo de pedido invalido: %s", kind)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var customer models.Customer
	if err := tx.Where("ci = ?", customerCI).First(&customer).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cliente %s no registrado", customerCI)
		}
		return nil, err
	}

	if waiterID != nil {
		var waiter models.User
		if err := tx.First(&waiter, *waiterID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("mesero %d no encontrado", *waiterID)
			}
			return nil, err
		}
	}

	order := models.Order{
		Kind:       kind,
		Status:     models.OrderPending,
		Total:      0,
		CustomerCI: customer.CI,
		WaiterID:   waiterID,
		OrderedAt:  time.Now(),
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Un pedido de mesa puede abrirse ya con su mesa asignada.
	if tableID != nil {
		if kind != models.OrderDineIn {
			tx.Rollback()
			return nil, apperr.Validation("un pedido a domicilio no lleva mesa")
		}
		if err := s.assignTableTx(tx, &order, *tableID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AssignTable liga el pedido a una mesa, liberando la mesa anterior si el
// pedido se esta moviendo. Una mesa ocupada por otro pedido rechaza la
// asignacion sin escribir nada.
func (s *OrderService) AssignTable(orderID, tableID uint) (*models.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pedido %d no encontrado", orderID)
		}
		return nil, err
	}

	if err := s.assignTableTx(tx, &order, tableID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// assignTableTx hace el trabajo real de AssignTable dentro de la transaccion
// del caller.
func (s *OrderService) assignTableTx(tx *gorm.DB, order *models.Order, tableID uint) error {
	if order.Finalized() {
		return apperr.Conflict("pedido %d ya finalizado", order.ID)
	}
	if order.Kind != models.OrderDineIn {
		return apperr.Validation("solo pedidos de mesa llevan mesa asignada")
	}

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("mesa %d no encontrada", tableID)
		}
		return err
	}

	sameTable := order.TableID != nil && *order.TableID == table.ID

	if table.Status == models.TableOccupied && !sameTable {
		return apperr.Conflict("mesa %d ya ocupada", table.Number)
	}

	if !sameTable {
		// Liberar la mesa anterior si el pedido se esta moviendo.
		if order.TableID != nil {
			if err := releaseTableTx(tx, *order.TableID); err != nil {
				return err
			}
		}

		// Ocupar la mesa nueva con compare-and-swap sobre version: si otra
		// transaccion la toco entre la lectura y esta escritura, no se
		// duplica la asignacion.
		res := tx.Model(&models.Table{}).
			Where("id = ? AND version = ?", table.ID, table.Version).
			Updates(map[string]interface{}{
				"status":  models.TableOccupied,
				"version": table.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("mesa %d fue tomada por otra operacion", table.Number)
		}
	}

	order.TableID = &table.ID
	// El sistema original refresca la fecha del pedido al (re)asignar mesa;
	// se conserva ese comportamiento.
	order.OrderedAt = time.Now()

	return tx.Save(order).Error
}

// releaseTableTx marca una mesa como libre incrementando su version.
func releaseTableTx(tx *gorm.DB, tableID uint) error {
	return tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"status":  models.TableFree,
			"version": gorm.Expr("version + 1"),
		}).Error
}

// SubmitOrderLines reemplaza el conjunto completo de lineas del pedido y
// recalcula el total con los precios autoritativos del catalogo. Es
// reemplazo total (ultima escritura gana), no un merge.
func (s *OrderService) SubmitOrderLines(orderID uint, comboLines, productLines []LineInput) (*models.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pedido %d no encontrado", orderID)
		}
		return nil, err
	}

	if order.Finalized() {
		tx.Rollback()
		return nil, apperr.Conflict("pedido %d ya finalizado", order.ID)
	}

	// Borrar todas las lineas existentes antes de insertar el set nuevo.
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.ProductLine{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.ComboLine{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var total float64

	for _, line := range productLines {
		if line.Quantity < 1 {
			tx.Rollback()
			return nil, apperr.Validation("cantidad invalida para plato %d", line.RefID)
		}
		var product models.Product
		if err := tx.First(&product, line.RefID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("plato %d no encontrado", line.RefID)
			}
			return nil, err
		}
		pl := models.ProductLine{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Status:    models.LinePending,
		}
		if err := tx.Create(&pl).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		total += product.Price * float64(line.Quantity)
	}

	for _, line := range comboLines {
		if line.Quantity < 1 {
			tx.Rollback()
			return nil, apperr.Validation("cantidad invalida para combo %d", line.RefID)
		}
		var combo models.Combo
		if err := tx.First(&combo, line.RefID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("combo %d no encontrado", line.RefID)
			}
			return nil, err
		}
		cl := models.ComboLine{
			OrderID:   order.ID,
			ComboID:   combo.ID,
			Quantity:  line.Quantity,
			UnitPrice: combo.Price,
			Status:    models.LinePending,
		}
		if err := tx.Create(&cl).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		total += combo.Price * float64(line.Quantity)
	}

	order.Total = round2(total)
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("ProductLines").Preload("ComboLines").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus mueve el ciclo de vida de un pedido a domicilio segun la
// tabla de transiciones. Los pedidos de mesa solo admiten cancelacion: su
// entrega pasa por el pago.
func (s *OrderService) UpdateOrderStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, apperr.Validation("estado de pedido invalido: %s", newStatus)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pedido %d no encontrado", orderID)
		}
		return nil, err
	}

	if !models.CanTransitionOrder(order.Kind, order.Status, newStatus) {
		tx.Rollback()
		return nil, apperr.Conflict("transicion %s -> %s no permitida para pedido %s",
			order.Status, newStatus, order.Kind)
	}

	order.Status = newStatus
	if newStatus == models.OrderDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Un pedido cancelado suelta su mesa.
	if newStatus == models.OrderCancelled && order.TableID != nil {
		if err := releaseTableTx(tx, *order.TableID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateLineStatus avanza o retrocede el estado de cocina de una linea,
// identificada por (pedido, referencia de catalogo, tipo de linea).
func (s *OrderService) UpdateLineStatus(orderID, refID uint, lineKind, newStatus string) (interface{}, error) {
	switch newStatus {
	case models.LinePending, models.LineInPrep, models.LineDelivered:
	default:
		return nil, apperr.Validation("estado de linea invalido: %s", newStatus)
	}

	switch lineKind {
	case models.LineKindProduct:
		var line models.ProductLine
		if err := s.db.Where("order_id = ? AND product_id = ?", orderID, refID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("linea de plato %d en pedido %d no encontrada", refID, orderID)
			}
			return nil, err
		}
		if !models.CanTransitionLine(line.Status, newStatus) {
			return nil, apperr.Conflict("transicion de linea %s -> %s no permitida", line.Status, newStatus)
		}
		line.Status = newStatus
		if err := s.db.Save(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil

	case models.LineKindCombo:
		var line models.ComboLine
		if err := s.db.Where("order_id = ? AND combo_id = ?", orderID, refID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("linea de combo %d en pedido %d no encontrada", refID, orderID)
			}
			return nil, err
		}
		if !models.CanTransitionLine(line.Status, newStatus) {
			return nil, apperr.Conflict("transicion de linea %s -> %s no permitida", line.Status, newStatus)
		}
		line.Status = newStatus
		if err := s.db.Save(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	}

	return nil, apperr.Validation("tipo de linea invalido: %s", lineKind)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
