package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/apperr"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
)

// PaymentService maneja la finalizacion de pedidos: registrar el pago,
// marcar el pedido entregado y liberar su mesa, todo en una transaccion.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// InvoiceInput son los datos de facturacion opcionales.
type InvoiceInput struct {
	BusinessName string `json:"razonSocial" binding:"required"`
	TaxID        string `json:"nit" binding:"required"`
}

// ProcessPayment registra el pago de un pedido. Un pedido admite exactamente
// un pago: un segundo intento, o un intento sobre un pedido cancelado,
// se rechaza. El monto debe coincidir con el total almacenado.
func (s *PaymentService) ProcessPayment(orderID uint, method string, amount float64, invoice *InvoiceInput) (*models.Payment, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, apperr.Validation("metodo de pago invalido: %s", method)
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

	if order.PaymentID != nil || order.Status == models.OrderDelivered {
		tx.Rollback()
		return nil, apperr.Conflict("pedido %d ya pagado", order.ID)
	}
	if order.Status == models.OrderCancelled {
		tx.Rollback()
		return nil, apperr.Conflict("pedido %d cancelado", order.ID)
	}

	// El monto se valida contra el total recalculado del pedido, no se
	// confia en el cliente.
	if math.Abs(amount-order.Total) > 0.009 {
		tx.Rollback()
		return nil, apperr.Validation("monto %.2f no coincide con el total %.2f", amount, order.Total)
	}

	now := time.Now()
	payment := models.Payment{
		Method: method,
		Amount: amount,
		PaidAt: now,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if invoice != nil {
		inv := models.Invoice{
			PaymentID:    payment.ID,
			BusinessName: invoice.BusinessName,
			TaxID:        invoice.TaxID,
		}
		if err := tx.Create(&inv).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		payment.Invoice = &inv
	}

	// La fecha del pedido se preserva; solo se estampa la de entrega.
	order.PaymentID = &payment.ID
	order.Status = models.OrderDelivered
	order.DeliveredAt = &now
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if order.TableID != nil {
		if err := releaseTableTx(tx, *order.TableID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentByID devuelve un pago con su factura si la tiene.
func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Invoice").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pago %d no encontrado", id)
		}
		return nil, err
	}
	return &payment, nil
}

// GetPaymentByOrderID devuelve el pago de un pedido, si ya fue finalizado.
func (s *PaymentService) GetPaymentByOrderID(orderID uint) (*models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pedido %d no encontrado", orderID)
		}
		return nil, err
	}
	if order.PaymentID == nil {
		return nil, apperr.NotFound("pedido %d sin pago registrado", orderID)
	}
	return s.GetPaymentByID(*order.PaymentID)
}
