package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/controllers"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))

	// Seed: un cliente, un producto y dos mesas.
	db.Create(&models.Customer{CI: "1234567", Name: "Juan Perez"})
	db.Create(&models.Product{Name: "Pique Macho", Kind: models.ProductDish, Price: 45, Available: true})
	db.Create(&models.Table{Number: 1, Capacity: 4, Status: models.TableFree})
	db.Create(&models.Table{Number: 2, Capacity: 4, Status: models.TableFree})
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/pedidos", orderCtrl.CreateOrder)
	router.GET("/pedidos/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/pedidos/:order_id/mesa", orderCtrl.AssignTable)
	router.PUT("/pedidos/:order_id/lineas", orderCtrl.SubmitOrderLines)
	router.PATCH("/pedidos/:order_id/estado", orderCtrl.UpdateOrderStatus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderAndSubmitLines(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo":      models.OrderDineIn,
		"clienteCi": "1234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := uint(created["data"].(map[string]interface{})["id"].(float64))

	// Enviar lineas: el total sale del catalogo, no del cliente.
	w = doJSON(t, router, "PUT", fmt.Sprintf("/pedidos/%d/lineas", orderID), map[string]interface{}{
		"platos": []map[string]interface{}{
			{"id": 1, "cantidad": 2},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	data := updated["data"].(map[string]interface{})
	assert.Equal(t, 90.0, data["total"])
}

func TestCreateOrderUnknownCustomerReturns404(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo":      models.OrderDineIn,
		"clienteCi": "9999999",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignOccupiedTableReturns409(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	// Dos pedidos del mismo cliente.
	w := doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo": models.OrderDineIn, "clienteCi": "1234567", "mesaId": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo": models.OrderDineIn, "clienteCi": "1234567",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	secondID := uint(created["data"].(map[string]interface{})["id"].(float64))

	// La mesa 1 ya esta ocupada por el primer pedido.
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/pedidos/%d/mesa", secondID), map[string]interface{}{
		"mesaId": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// La mesa 2 esta libre.
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/pedidos/%d/mesa", secondID), map[string]interface{}{
		"mesaId": 2,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIllegalLifecycleTransitionReturns409(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/pedidos", map[string]interface{}{
		"tipo": models.OrderDelivery, "clienteCi": "1234567",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := uint(created["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/pedidos/%d/estado", orderID), map[string]interface{}{
		"estado": models.OrderDelivered,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/pedidos/%d/estado", orderID), map[string]interface{}{
		"estado": models.OrderInTransit,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
