package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> registra una mesa nueva
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int    `json:"numero" binding:"required"`
		Capacity int    `json:"capacidad"`
		Status   string `json:"estado"` // opcional, por defecto "libre"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableFree,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}
	if req.Status != "" {
		if !models.ValidTableStatus(req.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("estado de mesa invalido: %s", req.Status))
			return
		}
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (estado=%s)", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> todas las mesas
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detalle de una mesa
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> edicion manual del estado por el personal
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Status string `json:"estado" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidTableStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("estado de mesa invalido: %s", body.Status))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// La edicion manual tambien pasa por el compare-and-swap de version.
	res := tc.DB.Model(&models.Table{}).
		Where("id = ? AND version = ?", table.ID, table.Version).
		Updates(map[string]interface{}{
			"status":  body.Status,
			"version": table.Version + 1,
		})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("mesa %d modificada por otra operacion", table.Number))
		return
	}

	table.Status = body.Status
	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> elimina una mesa (solo si esta libre)
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.Status == models.TableOccupied {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("mesa %d esta ocupada", table.Number))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// FindTablesByStatus -> ej. listar mesas libres
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("estado")
	if status == "" {
		status = models.TableFree
	}
	var tables []models.Table
	if err := tc.DB.Where("status = ?", status).Order("number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// GetTableStats -> conteo de mesas por estado para el tablero
func (tc *TableController) GetTableStats(c *gin.Context) {
	var freeCount, occupiedCount, reservedCount int64

	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableFree).Count(&freeCount)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableOccupied).Count(&occupiedCount)
	tc.DB.Model(&models.Table{}).Where("status = ?", models.TableReserved).Count(&reservedCount)

	utils.RespondJSON(c, http.StatusOK, "Table stats", gin.H{
		"libres":     freeCount,
		"ocupadas":   occupiedCount,
		"reservadas": reservedCount,
		"total":      freeCount + occupiedCount + reservedCount,
	})
}
