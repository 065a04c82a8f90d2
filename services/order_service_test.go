package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/apperr"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, ci string) models.Customer {
	customer := models.Customer{CI: ci, Name: "Cliente " + ci}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedTable(t *testing.T, db *gorm.DB, number int, status string) models.Table {
	table := models.Table{Number: number, Capacity: 4, Status: status}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	product := models.Product{Name: name, Kind: models.ProductDish, Price: price, Available: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCombo(t *testing.T, db *gorm.DB, name string, price float64) models.Combo {
	combo := models.Combo{Name: name, Price: price, Available: true}
	require.NoError(t, db.Create(&combo).Error)
	return combo
}

func newDineInOrder(t *testing.T, svc *OrderService, ci string) *models.Order {
	order, err := svc.CreateOrder(models.OrderDineIn, ci, nil, nil)
	require.NoError(t, err)
	return order
}

func reloadTable(t *testing.T, db *gorm.DB, id uint) models.Table {
	var table models.Table
	require.NoError(t, db.First(&table, id).Error)
	return table
}

func reloadOrder(t *testing.T, db *gorm.DB, id uint) models.Order {
	var order models.Order
	require.NoError(t, db.First(&order, id).Error)
	return order
}

func TestAssignTableToFreeTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 1, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	updated, err := svc.AssignTable(order.ID, table.ID)
	assert.NoError(t, err)
	require.NotNil(t, updated.TableID)
	assert.Equal(t, table.ID, *updated.TableID)

	reloaded := reloadTable(t, db, table.ID)
	assert.Equal(t, models.TableOccupied, reloaded.Status)
	assert.Equal(t, table.Version+1, reloaded.Version)
}

func TestAssignTableOccupiedByOtherOrder(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	seedCustomer(t, db, "7654321")
	table := seedTable(t, db, 2, models.TableFree)

	holder := newDineInOrder(t, svc, "7654321")
	_, err := svc.AssignTable(holder.ID, table.ID)
	require.NoError(t, err)

	order := newDineInOrder(t, svc, "1234567")
	_, err = svc.AssignTable(order.ID, table.ID)
	assert.True(t, apperr.IsConflict(err))

	// La mesa sigue ocupada por el pedido original y el otro pedido no
	// gano referencia.
	assert.Equal(t, models.TableOccupied, reloadTable(t, db, table.ID).Status)
	assert.Nil(t, reloadOrder(t, db, order.ID).TableID)
	holderReloaded := reloadOrder(t, db, holder.ID)
	require.NotNil(t, holderReloaded.TableID)
	assert.Equal(t, table.ID, *holderReloaded.TableID)
}

func TestReassignReleasesPreviousTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	tableA := seedTable(t, db, 1, models.TableFree)
	tableB := seedTable(t, db, 2, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.AssignTable(order.ID, tableA.ID)
	require.NoError(t, err)

	updated, err := svc.AssignTable(order.ID, tableB.ID)
	assert.NoError(t, err)
	require.NotNil(t, updated.TableID)
	assert.Equal(t, tableB.ID, *updated.TableID)
	assert.Equal(t, models.TableFree, reloadTable(t, db, tableA.ID).Status)
	assert.Equal(t, models.TableOccupied, reloadTable(t, db, tableB.ID).Status)
}

func TestReassignSameTableIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 1, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.AssignTable(order.ID, table.ID)
	require.NoError(t, err)
	afterFirst := reloadTable(t, db, table.ID)

	updated, err := svc.AssignTable(order.ID, table.ID)
	assert.NoError(t, err)
	require.NotNil(t, updated.TableID)
	assert.Equal(t, table.ID, *updated.TableID)

	// La mesa no se libero ni cambio de version.
	afterSecond := reloadTable(t, db, table.ID)
	assert.Equal(t, models.TableOccupied, afterSecond.Status)
	assert.Equal(t, afterFirst.Version, afterSecond.Version)
}

func TestAssignTableRefreshesOrderTimestamp(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 1, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("ordered_at", past).Error)

	_, err := svc.AssignTable(order.ID, table.ID)
	require.NoError(t, err)

	reloaded := reloadOrder(t, db, order.ID)
	assert.True(t, reloaded.OrderedAt.After(past.Add(time.Hour)))
}

func TestAssignTableNotFoundErrors(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 1, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.AssignTable(9999, table.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AssignTable(order.ID, 9999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSubmitOrderLinesReplacesAndReprices(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	product := seedProduct(t, db, "Pique Macho", 45)
	order := newDineInOrder(t, svc, "1234567")

	// Primer envio: 2 unidades.
	updated, err := svc.SubmitOrderLines(order.ID, nil, []LineInput{{RefID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.Total)
	require.Len(t, updated.ProductLines, 1)
	assert.Equal(t, models.LinePending, updated.ProductLines[0].Status)

	// Reemplazo total: queda exactamente 1 unidad y el total se recalcula.
	updated, err = svc.SubmitOrderLines(order.ID, nil, []LineInput{{RefID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Total)
	require.Len(t, updated.ProductLines, 1)
	assert.Equal(t, 1, updated.ProductLines[0].Quantity)

	var count int64
	db.Model(&models.ProductLine{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitOrderLinesWithCombos(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	product := seedProduct(t, db, "Silpancho", 30)
	combo := seedCombo(t, db, "Combo Familiar", 100)
	order := newDineInOrder(t, svc, "1234567")

	updated, err := svc.SubmitOrderLines(order.ID,
		[]LineInput{{RefID: combo.ID, Quantity: 1}},
		[]LineInput{{RefID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 160.0, updated.Total)
	assert.Len(t, updated.ComboLines, 1)
	assert.Len(t, updated.ProductLines, 1)
}

func TestSubmitOrderLinesUnknownProductRollsBack(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	product := seedProduct(t, db, "Sopa de Mani", 20)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.SubmitOrderLines(order.ID, nil, []LineInput{{RefID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.SubmitOrderLines(order.ID, nil, []LineInput{
		{RefID: product.ID, Quantity: 3},
		{RefID: 9999, Quantity: 1},
	})
	assert.True(t, apperr.IsNotFound(err))

	// La transaccion abortada no debe dejar estado parcial: sobreviven las
	// lineas y el total del envio anterior.
	var lines []models.ProductLine
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 20.0, reloadOrder(t, db, order.ID).Total)
}

func TestSubmitOrderLinesInvalidQuantity(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	product := seedProduct(t, db, "Anticucho", 15)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.SubmitOrderLines(order.ID, nil, []LineInput{{RefID: product.ID, Quantity: 0}})
	assert.True(t, apperr.IsValidation(err))
}

func TestOrderLifecycleTransitionsForDelivery(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")

	order, err := svc.CreateOrder(models.OrderDelivery, "1234567", nil, nil)
	require.NoError(t, err)

	// Saltarse en camino no esta permitido.
	_, err = svc.UpdateOrderStatus(order.ID, models.OrderDelivered)
	assert.True(t, apperr.IsConflict(err))

	for _, status := range []string{models.OrderInTransit, models.OrderReady, models.OrderDelivered} {
		_, err = svc.UpdateOrderStatus(order.ID, status)
		require.NoError(t, err)
	}

	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.OrderDelivered, reloaded.Status)
	assert.NotNil(t, reloaded.DeliveredAt)

	// Entregado es terminal.
	_, err = svc.UpdateOrderStatus(order.ID, models.OrderPending)
	assert.True(t, apperr.IsConflict(err))
}

func TestDineInOrderOnlyAllowsCancellation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.UpdateOrderStatus(order.ID, models.OrderInTransit)
	assert.True(t, apperr.IsConflict(err))

	_, err = svc.UpdateOrderStatus(order.ID, models.OrderCancelled)
	assert.NoError(t, err)
}

func TestCancellingDineInOrderFreesTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 1, models.TableFree)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.AssignTable(order.ID, table.ID)
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.TableFree, reloadTable(t, db, table.ID).Status)
}

func TestLineStatusTransitions(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	product := seedProduct(t, db, "Chicharron", 35)
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.SubmitOrderLines(order.ID, nil, []LineInput{{RefID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	// pendiente -> entregado directo no esta permitido
	_, err = svc.UpdateLineStatus(order.ID, product.ID, models.LineKindProduct, models.LineDelivered)
	assert.True(t, apperr.IsConflict(err))

	// avanzar, pausar, avanzar, terminar, reabrir
	steps := []string{
		models.LineInPrep,
		models.LinePending,
		models.LineInPrep,
		models.LineDelivered,
		models.LineInPrep,
	}
	for _, status := range steps {
		_, err = svc.UpdateLineStatus(order.ID, product.ID, models.LineKindProduct, status)
		require.NoError(t, err)
	}

	var line models.ProductLine
	require.NoError(t, db.Where("order_id = ? AND product_id = ?", order.ID, product.ID).First(&line).Error)
	assert.Equal(t, models.LineInPrep, line.Status)
}

func TestLineStatusUnknownLine(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	order := newDineInOrder(t, svc, "1234567")

	_, err := svc.UpdateLineStatus(order.ID, 42, models.LineKindCombo, models.LineInPrep)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.UpdateLineStatus(order.ID, 42, "postre", models.LineInPrep)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateOrderRequiresKnownCustomer(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	_, err := svc.CreateOrder(models.OrderDineIn, "0000000", nil, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrderWithTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 5, models.TableFree)

	order, err := svc.CreateOrder(models.OrderDineIn, "1234567", nil, &table.ID)
	require.NoError(t, err)
	require.NotNil(t, order.TableID)
	assert.Equal(t, table.ID, *order.TableID)
	assert.Equal(t, models.TableOccupied, reloadTable(t, db, table.ID).Status)
}

func TestCreateDeliveryOrderRejectsTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	seedCustomer(t, db, "1234567")
	table := seedTable(t, db, 5, models.TableFree)

	_, err := svc.CreateOrder(models.OrderDelivery, "1234567", nil, &table.ID)
	assert.True(t, apperr.IsValidation(err))

	// Nada quedo escrito.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, models.TableFree, reloadTable(t, db, table.ID).Status)
}
