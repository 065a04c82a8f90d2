package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("name asc").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// CreateCustomer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		CI      string `json:"ci" binding:"required"`
		Name    string `json:"nombre" binding:"required"`
		Phone   string `json:"telefono"`
		Address string `json:"direccion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		CI:      req.CI,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer registered: %s (CI %s)", customer.Name, customer.CI)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// GetCustomerByCI -> busqueda por carnet, usada antes de abrir un pedido
func (cc *CustomerController) GetCustomerByCI(c *gin.Context) {
	ci := c.Param("ci")
	var customer models.Customer
	if err := cc.DB.Where("ci = ?", ci).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// UpdateCustomer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	ci := c.Param("ci")
	var customer models.Customer
	if err := cc.DB.Where("ci = ?", ci).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name    *string `json:"nombre"`
		Phone   *string `json:"telefono"`
		Address *string `json:"direccion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// DeleteCustomer
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	ci := c.Param("ci")
	var customer models.Customer
	if err := cc.DB.Where("ci = ?", ci).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"ci": ci})
}
