package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> resumen para el panel: pedidos por estado, mesas por
// estado y recaudacion del dia
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	orderStates := []string{
		models.OrderPending, models.OrderInTransit, models.OrderReady,
		models.OrderDelivered, models.OrderCancelled,
	}
	ordersByStatus := make(map[string]int64, len(orderStates))
	for _, status := range orderStates {
		var count int64
		ac.DB.Model(&models.Order{}).Where("status = ?", status).Count(&count)
		ordersByStatus[status] = count
	}

	tableStates := []string{models.TableFree, models.TableOccupied, models.TableReserved}
	tablesByStatus := make(map[string]int64, len(tableStates))
	for _, status := range tableStates {
		var count int64
		ac.DB.Model(&models.Table{}).Where("status = ?", status).Count(&count)
		tablesByStatus[status] = count
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayRevenue float64
	ac.DB.Model(&models.Payment{}).
		Where("paid_at >= ?", startOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&todayRevenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"pedidos":        ordersByStatus,
		"mesas":          tablesByStatus,
		"recaudacionHoy": todayRevenue,
	})
}

// GetTopProducts -> productos mas vendidos con su recaudacion
func (ac *AdminController) GetTopProducts(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var top []struct {
		ProductID uint    `json:"platoId"`
		Name      string  `json:"nombre"`
		Count     int     `json:"cantidad"`
		Revenue   float64 `json:"recaudacion"`
	}

	ac.DB.Raw(`
		SELECT p.id as product_id, p.name as name,
		SUM(pl.quantity) as count, SUM(pl.unit_price * pl.quantity) as revenue
		FROM product_lines pl
		JOIN products p ON pl.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY count DESC
		LIMIT 10
	`).Scan(&top)

	utils.RespondJSON(c, http.StatusOK, "Top products", top)
}
