package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"bms/internal/middleware"
)

type AuthController struct {
	auth Authenticator
}

func NewAuthController(auth Authenticator) *AuthController {
	return &AuthController{auth: auth}
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks the credentials and returns a bearer token together with the
// hydrated customer or employee.
func (h *AuthController) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if verrs := middleware.ValidateRequest(body); verrs != nil {
		middleware.RespondWithValidationError(c, verrs)
		return
	}

	p, err := h.auth.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		logrus.WithField("username", body.Username).Info("login rejected")
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(p.ID(), p.Role())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	resp := gin.H{
		"token": token,
		"role":  p.Role(),
	}
	if p.Customer != nil {
		resp["customer"] = p.Customer
	} else {
		resp["employee"] = p.Employee
	}
	c.JSON(http.StatusOK, resp)
}
