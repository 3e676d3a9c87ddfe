package routes

import (
	"github.com/gin-gonic/gin"

	"bms/internal/controllers"
	"bms/internal/middleware"
	"bms/internal/services"
)

func EmployeeRoutes(r *gin.Engine, h *controllers.EmployeeController) {
	employee := r.Group("/employee")
	employee.Use(middleware.RequireAuthWithRole(services.RoleEmployee))
	{
		employee.GET("/customers", h.ListCustomers)
		employee.GET("/customers/:id", h.GetCustomer)
		employee.POST("/customers", h.RegisterCustomer)
		employee.DELETE("/customers/:id", h.DeleteCustomer)
		employee.POST("/customers/:id/accounts", h.OpenCustomerAccount)
		employee.POST("/accounts/:number/interest", h.ApplyInterest)
	}
}
