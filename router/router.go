package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/controllers"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/middlewares"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter estricto para login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalogo visible sin login
	r.GET("/productos", catalogCtrl.GetAllProducts)
	r.GET("/combos", catalogCtrl.GetAllCombos)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// MESAS
	auth.GET("/mesas", tableCtrl.GetAllTables)
	auth.POST("/mesas", tableCtrl.CreateTable)
	auth.GET("/mesas/stats", tableCtrl.GetTableStats)
	auth.GET("/mesas/buscar", tableCtrl.FindTablesByStatus)
	auth.GET("/mesas/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/mesas/:table_id", tableCtrl.UpdateTableStatus)
	auth.DELETE("/mesas/:table_id", tableCtrl.DeleteTable)

	// CLIENTES
	auth.GET("/clientes", customerCtrl.GetAllCustomers)
	auth.POST("/clientes", customerCtrl.CreateCustomer)
	auth.GET("/clientes/:ci", customerCtrl.GetCustomerByCI)
	auth.PATCH("/clientes/:ci", customerCtrl.UpdateCustomer)
	auth.DELETE("/clientes/:ci", customerCtrl.DeleteCustomer)

	// CATALOGO (escritura solo admin)
	catalog := auth.Group("/")
	catalog.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		catalog.POST("/productos", catalogCtrl.CreateProduct)
		catalog.PATCH("/productos/:product_id", catalogCtrl.UpdateProduct)
		catalog.DELETE("/productos/:product_id", catalogCtrl.DeleteProduct)
		catalog.POST("/combos", catalogCtrl.CreateCombo)
		catalog.PATCH("/combos/:combo_id", catalogCtrl.UpdateCombo)
		catalog.DELETE("/combos/:combo_id", catalogCtrl.DeleteCombo)
	}
	auth.GET("/productos/:product_id", catalogCtrl.GetProductByID)
	auth.GET("/combos/:combo_id", catalogCtrl.GetComboByID)

	// PEDIDOS
	auth.GET("/pedidos", orderCtrl.GetAllOrders)
	auth.POST("/pedidos", orderCtrl.CreateOrder)
	auth.GET("/pedidos/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/pedidos/:order_id/mesa", orderCtrl.AssignTable)
	auth.PUT("/pedidos/:order_id/lineas", orderCtrl.SubmitOrderLines)
	auth.PATCH("/pedidos/:order_id/estado", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/pedidos/:order_id", orderCtrl.DeleteOrder)

	// COCINA: estado por linea (kind = plato|combo)
	auth.POST("/pedidos/:order_id/lineas/:kind/:ref_id/start", orderCtrl.StartLine)
	auth.POST("/pedidos/:order_id/lineas/:kind/:ref_id/finish", orderCtrl.FinishLine)
	auth.POST("/pedidos/:order_id/lineas/:kind/:ref_id/pause", orderCtrl.PauseLine)
	auth.POST("/pedidos/:order_id/lineas/:kind/:ref_id/reopen", orderCtrl.ReopenLine)
	auth.GET("/cocina/tablero", orderCtrl.GetKitchenBoard)

	// PAGOS
	payments := auth.Group("/pagos")
	payments.Use(middlewares.PaymentLoggerMiddleware())
	{
		payments.POST("", paymentCtrl.CreatePayment)
	}
	auth.GET("/pagos", paymentCtrl.GetAllPayments)
	auth.GET("/pagos/:payment_id", paymentCtrl.GetPaymentByID)
	auth.GET("/pedidos/:order_id/pago", paymentCtrl.GetOrderPayment)

	// ADMIN
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/dashboard/top-productos", adminCtrl.GetTopProducts)

	return r
}
