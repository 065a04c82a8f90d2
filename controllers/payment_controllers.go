package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/apperr"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/services"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

type PaymentController struct {
	DB  *gorm.DB
	svc *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, svc: services.NewPaymentService(db)}
}

// GetAllPayments
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Preload("Invoice").Order("paid_at desc").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All payments", payments)
}

// CreatePayment -> finaliza un pedido: registra el pago (y factura si se
// pide), lo marca entregado y libera su mesa
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var body struct {
		OrderID uint                   `json:"pedidoId" binding:"required"`
		Method  string                 `json:"tipo" binding:"required"`
		Amount  float64                `json:"monto" binding:"required"`
		Invoice *services.InvoiceInput `json:"factura"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.svc.ProcessPayment(body.OrderID, body.Method, body.Amount, body.Invoice)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}

	utils.InfoLogger.Printf("Payment %d recorded for order %d (%s, %s)",
		payment.ID, body.OrderID, payment.Method, utils.FormatCurrency(payment.Amount))
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// GetPaymentByID
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("payment_id"))

	payment, err := pc.svc.GetPaymentByID(uint(id))
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// GetOrderPayment -> pago registrado de un pedido
func (pc *PaymentController) GetOrderPayment(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	payment, err := pc.svc.GetPaymentByOrderID(uint(orderID))
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order payment", payment)
}
