package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/controllers"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

func setupPaymentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	router.POST("/pedidos", orderCtrl.CreateOrder)
	router.PUT("/pedidos/:order_id/lineas", orderCtrl.SubmitOrderLines)
	router.POST("/pagos", paymentCtrl.CreatePayment)
	router.GET("/pedidos/:order_id/pago", paymentCtrl.GetOrderPayment)
	return router
}

// prepara un pedido de mesa con mesa asignada y total 90
func seedPayableOrder(t *testing.T, db *gorm.DB, router *gin.Engine) uint {
	w := doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo": models.OrderDineIn, "clienteCi": "1234567", "mesaId": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := uint(created["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "PUT", fmt.Sprintf("/pedidos/%d/lineas", orderID), map[string]interface{}{
		"platos": []map[string]interface{}{{"id": 1, "cantidad": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	return orderID
}

func TestCreatePaymentFinalizesOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupPaymentRouter(db)
	orderID := seedPayableOrder(t, db, router)

	w := doJSON(t, router, "POST", "/pagos", map[string]interface{}{
		"pedidoId": orderID,
		"tipo":     models.PaymentCash,
		"monto":    90,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderDelivered, order.Status)
	assert.NotNil(t, order.PaymentID)
	assert.NotNil(t, order.DeliveredAt)

	var table models.Table
	require.NoError(t, db.First(&table, 1).Error)
	assert.Equal(t, models.TableFree, table.Status)
}

func TestCreatePaymentTwiceReturns409(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupPaymentRouter(db)
	orderID := seedPayableOrder(t, db, router)

	payload := map[string]interface{}{
		"pedidoId": orderID, "tipo": models.PaymentCash, "monto": 90,
	}
	w := doJSON(t, router, "POST", "/pagos", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/pagos", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreatePaymentWrongAmountReturns422(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupPaymentRouter(db)
	orderID := seedPayableOrder(t, db, router)

	w := doJSON(t, router, "POST", "/pagos", map[string]interface{}{
		"pedidoId": orderID, "tipo": models.PaymentCash, "monto": 50,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreatePaymentWithInvoice(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupPaymentRouter(db)
	orderID := seedPayableOrder(t, db, router)

	w := doJSON(t, router, "POST", "/pagos", map[string]interface{}{
		"pedidoId": orderID,
		"tipo":     models.PaymentCard,
		"monto":    90,
		"factura": map[string]interface{}{
			"razonSocial": "Comercial El Prado SRL",
			"nit":         "1020304050",
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/pedidos/%d/pago", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	factura := data["factura"].(map[string]interface{})
	assert.Equal(t, "1020304050", factura["nit"])
}
