package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

// CatalogController maneja el catalogo: platos, bebidas y combos. Los
// precios guardados aqui son la fuente autoritativa para los totales.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

/* ---------- Productos ---------- */

// GetAllProducts -> lista del catalogo, filtrable por tipo
func (cc *CatalogController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	q := cc.DB
	if kind := c.Query("tipo"); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if c.Query("disponibles") == "true" {
		q = q.Where("available = ?", true)
	}
	if err := q.Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// CreateProduct
func (cc *CatalogController) CreateProduct(c *gin.Context) {
	var req struct {
		Name        string  `json:"nombre" binding:"required"`
		Kind        string  `json:"tipo" binding:"required"`
		Price       float64 `json:"precio" binding:"required"`
		Description string  `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidProductKind(req.Kind) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("tipo de producto invalido: %s", req.Kind))
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("precio invalido"))
		return
	}

	product := models.Product{
		Name:        req.Name,
		Kind:        req.Kind,
		Price:       req.Price,
		Description: req.Description,
		Available:   true,
	}
	if err := cc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product created: %s (%s)", product.Name, utils.FormatCurrency(product.Price))
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID
func (cc *CatalogController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := cc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// UpdateProduct -> edicion parcial
func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := cc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"nombre"`
		Price       *float64 `json:"precio"`
		Description *string  `json:"descripcion"`
		Available   *bool    `json:"disponible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("precio invalido"))
			return
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := cc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (cc *CatalogController) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := cc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := cc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"id": product.ID})
}

/* ---------- Combos ---------- */

// GetAllCombos
func (cc *CatalogController) GetAllCombos(c *gin.Context) {
	var combos []models.Combo
	if err := cc.DB.Preload("Items").Preload("Items.Product").Order("name asc").Find(&combos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of combos", combos)
}

// CreateCombo -> combo con sus productos componentes
func (cc *CatalogController) CreateCombo(c *gin.Context) {
	var req struct {
		Name        string  `json:"nombre" binding:"required"`
		Price       float64 `json:"precio" binding:"required"`
		Description string  `json:"descripcion"`
		Items       []struct {
			ProductID uint `json:"platoId" binding:"required"`
			Quantity  int  `json:"cantidad"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("precio invalido"))
		return
	}

	tx := cc.DB.Begin()

	combo := models.Combo{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Available:   true,
	}
	if err := tx.Create(&combo).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, item := range req.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("plato %d no encontrado", item.ProductID))
			return
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		comboItem := models.ComboItem{
			ComboID:   combo.ID,
			ProductID: product.ID,
			Quantity:  qty,
		}
		if err := tx.Create(&comboItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	tx.Commit()

	utils.InfoLogger.Printf("Combo created: %s (%s)", combo.Name, utils.FormatCurrency(combo.Price))
	utils.RespondJSON(c, http.StatusCreated, "Combo created", combo)
}

// GetComboByID
func (cc *CatalogController) GetComboByID(c *gin.Context) {
	var combo models.Combo
	if err := cc.DB.Preload("Items").Preload("Items.Product").First(&combo, c.Param("combo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Combo detail", combo)
}

// UpdateCombo -> edicion parcial (sin tocar los items)
func (cc *CatalogController) UpdateCombo(c *gin.Context) {
	var combo models.Combo
	if err := cc.DB.First(&combo, c.Param("combo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"nombre"`
		Price       *float64 `json:"precio"`
		Description *string  `json:"descripcion"`
		Available   *bool    `json:"disponible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		combo.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("precio invalido"))
			return
		}
		combo.Price = *req.Price
	}
	if req.Description != nil {
		combo.Description = *req.Description
	}
	if req.Available != nil {
		combo.Available = *req.Available
	}

	if err := cc.DB.Save(&combo).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Combo updated", combo)
}

// DeleteCombo
func (cc *CatalogController) DeleteCombo(c *gin.Context) {
	var combo models.Combo
	if err := cc.DB.First(&combo, c.Param("combo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := cc.DB.Delete(&combo).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Combo deleted", gin.H{"id": combo.ID})
}
