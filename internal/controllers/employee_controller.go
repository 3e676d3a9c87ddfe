package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bms/internal/services"
)

// EmployeeController is the staff console: customer registration and
// account administration for any customer.
type EmployeeController struct {
	accounts  AccountOperations
	customers CustomerDirectory
	auth      Authenticator
}

func NewEmployeeController(accounts AccountOperations, customers CustomerDirectory, auth Authenticator) *EmployeeController {
	return &EmployeeController{accounts: accounts, customers: customers, auth: auth}
}

type registerCustomerInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Address         string `json:"address"`
	EmployerName    string `json:"employer_name"`
	EmployerAddress string `json:"employer_address"`
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

func (h *EmployeeController) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}

func (h *EmployeeController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		notFound(c, "customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// RegisterCustomer creates the customer and its login in one step.
func (h *EmployeeController) RegisterCustomer(c *gin.Context) {
	var body registerCustomerInput
	if !bindJSON(c, &body) {
		return
	}
	customer, err := h.auth.RegisterCustomer(c.Request.Context(), services.RegisterCustomerInput{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Address:         body.Address,
		EmployerName:    body.EmployerName,
		EmployerAddress: body.EmployerAddress,
		Username:        body.Username,
		Password:        body.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// OpenCustomerAccount opens an account for :id. A cheque request without
// employer fields uses the employer stored on the customer.
func (h *EmployeeController) OpenCustomerAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body openAccountInput
	if !bindJSON(c, &body) {
		return
	}
	account, err := h.accounts.OpenAccount(c.Request.Context(), body.toService(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account})
}

func (h *EmployeeController) ApplyInterest(c *gin.Context) {
	ctx := c.Request.Context()
	account, err := h.accounts.GetAccountByNumber(ctx, c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	if account == nil {
		notFound(c, "account")
		return
	}
	if err := h.accounts.ApplyMonthlyInterest(ctx, account); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *EmployeeController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.customers.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		notFound(c, "customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
