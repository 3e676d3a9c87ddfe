package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bms/internal/middleware"
	"bms/internal/models"
	"bms/internal/services"
)

// CustomerController serves the signed-in customer's own records.
type CustomerController struct {
	accounts  AccountOperations
	customers CustomerDirectory
}

func NewCustomerController(accounts AccountOperations, customers CustomerDirectory) *CustomerController {
	return &CustomerController{accounts: accounts, customers: customers}
}

type openAccountInput struct {
	Type            string  `json:"type" validate:"required"`
	AccountNumber   string  `json:"account_number"`
	InitialDeposit  float64 `json:"initial_deposit"`
	Branch          string  `json:"branch"`
	EmployerName    string  `json:"employer_name" validate:"required_with=EmployerAddress"`
	EmployerAddress string  `json:"employer_address" validate:"required_with=EmployerName"`
}

func (in openAccountInput) toService(customerID uint) services.OpenAccountInput {
	out := services.OpenAccountInput{
		CustomerID:     customerID,
		Kind:           in.Type,
		Number:         in.AccountNumber,
		InitialDeposit: in.InitialDeposit,
		Branch:         in.Branch,
	}
	if in.EmployerName != "" || in.EmployerAddress != "" {
		out.Employment = &models.Employment{EmployerName: in.EmployerName, EmployerAddress: in.EmployerAddress}
	}
	return out
}

type amountInput struct {
	Amount float64 `json:"amount" validate:"required"`
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if verrs := middleware.ValidateRequest(obj); verrs != nil {
		middleware.RespondWithValidationError(c, verrs)
		return false
	}
	return true
}

// Me returns the caller with all of their accounts.
func (h *CustomerController) Me(c *gin.Context) {
	id, _ := middleware.PrincipalID(c)
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

func (h *CustomerController) OpenAccount(c *gin.Context) {
	id, _ := middleware.PrincipalID(c)
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

func (h *CustomerController) Deposit(c *gin.Context) {
	h.move(c, h.accounts.Deposit)
}

func (h *CustomerController) Withdraw(c *gin.Context) {
	h.move(c, h.accounts.Withdraw)
}

// move resolves :number among the caller's own accounts and applies op.
func (h *CustomerController) move(c *gin.Context, op func(ctx context.Context, a *models.Account, amount float64) error) {
	id, _ := middleware.PrincipalID(c)
	var body amountInput
	if !bindJSON(c, &body) {
		return
	}

	ctx := c.Request.Context()
	account, err := h.accounts.GetCustomerAccount(ctx, id, c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	if account == nil {
		notFound(c, "account")
		return
	}

	if err := op(ctx, account, body.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
