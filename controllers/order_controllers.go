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

type OrderController struct {
	DB  *gorm.DB
	svc *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, svc: services.NewOrderService(db)}
}

// GetAllOrders -> lista de pedidos con sus lineas
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	q := oc.DB.Preload("ProductLines").Preload("ComboLines")
	if status := c.Query("estado"); status != "" {
		q = q.Where("status = ?", status)
	}
	if kind := c.Query("tipo"); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Order("ordered_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> abre un pedido nuevo (estado=pendiente) para un cliente verificado
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		Kind       string `json:"tipo" binding:"required"`
		CustomerCI string `json:"clienteCi" binding:"required"`
		WaiterID   *uint  `json:"meseroId"`
		TableID    *uint  `json:"mesaId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.CreateOrder(body.Kind, body.CustomerCI, body.WaiterID, body.TableID)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d created (tipo=%s, cliente=%s)", order.ID, order.Kind, order.CustomerCI)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detalle de un pedido
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.
		Preload("ProductLines").Preload("ProductLines.Product").
		Preload("ComboLines").Preload("ComboLines.Combo").
		Preload("Payment").Preload("Payment.Invoice").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// AssignTable -> liga el pedido a una mesa (libera la anterior si se mueve)
func (oc *OrderController) AssignTable(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		TableID uint `json:"mesaId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.AssignTable(uint(orderID), body.TableID)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d assigned to table %d", order.ID, body.TableID)
	utils.RespondJSON(c, http.StatusOK, "Table assigned", order)
}

// SubmitOrderLines -> reemplaza el set completo de lineas y recalcula el total
func (oc *OrderController) SubmitOrderLines(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Combos   []services.LineInput `json:"combos"`
		Products []services.LineInput `json:"platos"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.SubmitOrderLines(uint(orderID), body.Combos, body.Products)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d lines replaced (total=%s)", order.ID, utils.FormatCurrency(order.Total))
	utils.RespondJSON(c, http.StatusOK, "Order lines updated", order)
}

// UpdateOrderStatus -> transicion de ciclo de vida (pedidos a domicilio)
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.UpdateOrderStatus(uint(orderID), body.Status)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> limpieza administrativa explicita
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

/*
========================================
 COCINA: estado por linea
========================================
*/

// StartLine -> cocina toma una linea: pendiente => en preparacion
func (oc *OrderController) StartLine(c *gin.Context) {
	oc.transitionLine(c, models.LineInPrep, "Line in preparation")
}

// FinishLine -> linea lista: en preparacion => entregado
func (oc *OrderController) FinishLine(c *gin.Context) {
	oc.transitionLine(c, models.LineDelivered, "Line delivered")
}

// PauseLine -> cocina pausa una linea: en preparacion => pendiente
func (oc *OrderController) PauseLine(c *gin.Context) {
	oc.transitionLine(c, models.LinePending, "Line paused")
}

// ReopenLine -> corregir un error: entregado => en preparacion
func (oc *OrderController) ReopenLine(c *gin.Context) {
	oc.transitionLine(c, models.LineInPrep, "Line reopened")
}

func (oc *OrderController) transitionLine(c *gin.Context, target, message string) {
	orderID, _ := strconv.Atoi(c.Param("order_id"))
	refID, _ := strconv.Atoi(c.Param("ref_id"))
	kind := c.Param("kind")

	line, err := oc.svc.UpdateLineStatus(uint(orderID), uint(refID), kind, target)
	if err != nil {
		utils.RespondError(c, apperr.StatusCode(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, line)
}

// GetKitchenBoard -> vista de cocina: lineas pendientes o en preparacion de
// pedidos activos, mas antiguas primero
func (oc *OrderController) GetKitchenBoard(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleKitchen && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	activeStates := []string{models.LinePending, models.LineInPrep}

	var productLines []models.ProductLine
	if err := oc.DB.Preload("Product").
		Joins("JOIN orders ON orders.id = product_lines.order_id").
		Where("product_lines.status IN ? AND orders.status NOT IN ?",
			activeStates, []string{models.OrderDelivered, models.OrderCancelled}).
		Order("product_lines.created_at asc").
		Find(&productLines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var comboLines []models.ComboLine
	if err := oc.DB.Preload("Combo").
		Joins("JOIN orders ON orders.id = combo_lines.order_id").
		Where("combo_lines.status IN ? AND orders.status NOT IN ?",
			activeStates, []string{models.OrderDelivered, models.OrderCancelled}).
		Order("combo_lines.created_at asc").
		Find(&comboLines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen board", gin.H{
		"platos": productLines,
		"combos": comboLines,
	})
}
