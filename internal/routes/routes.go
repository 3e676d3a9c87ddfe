package routes

import (
	"io"
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"bms/internal/controllers"
	"bms/internal/middleware"
	"bms/internal/services"
)

type Options struct {
	AllowedOrigins []string
	// LogWriter receives one line per request; nil disables request logging.
	LogWriter io.Writer
}

func SetupRouter(svc *services.Services, opts Options) *gin.Engine {
	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	if opts.LogWriter != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithUTC(true),
			ginlog.WithSkipPath([]string{"/health"}),
			ginlog.WithWriter(opts.LogWriter),
		))
	}
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	AuthRoutes(r, controllers.NewAuthController(svc.Auth))
	CustomerRoutes(r, controllers.NewCustomerController(svc.Accounts, svc.Customers))
	EmployeeRoutes(r, controllers.NewEmployeeController(svc.Accounts, svc.Customers, svc.Auth))

	return r
}
