package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

// PaymentLoggerMiddleware deja rastro de cada intento de pago, exitoso o no.
func PaymentLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Payment attempt from %s", c.ClientIP())

		c.Next()

		if c.Writer.Status() == http.StatusCreated {
			utils.InfoLogger.Printf("Payment recorded (status %d)", c.Writer.Status())
		} else {
			utils.ErrorLogger.Printf("Payment rejected (status %d)", c.Writer.Status())
		}
	}
}
