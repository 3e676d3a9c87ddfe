package routes

import (
	"github.com/gin-gonic/gin"

	"bms/internal/controllers"
	"bms/internal/middleware"
	"bms/internal/services"
)

func CustomerRoutes(r *gin.Engine, h *controllers.CustomerController) {
	customer := r.Group("/customer")
	customer.Use(middleware.RequireAuthWithRole(services.RoleCustomer))
	{
		customer.GET("/me", h.Me)
		customer.POST("/accounts", h.OpenAccount)
		customer.POST("/accounts/:number/deposit", h.Deposit)
		customer.POST("/accounts/:number/withdraw", h.Withdraw)
	}
}
