package routes

import (
	"time"

	"github.com/Kariqs/kartdaily-api/cache"
	"github.com/Kariqs/kartdaily-api/controllers"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/Kariqs/kartdaily-api/services"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are built by the serve command, or by tests with in-memory fakes.
type Dependencies struct {
	Store         store.Store
	Tokens        *utils.TokenManager
	Gateway       services.PaymentGateway
	Notifier      services.Notifier
	Cache         cache.ProductCache
	Uploader      controllers.ImageUploader
	WebhookSecret string
	Production    bool
	CORSOrigins   []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func NewRouter(deps Dependencies) *gin.Engine {
	server := gin.New()
	if !deps.Production {
		server.Use(gin.Logger())
	}
	server.Use(
		middlewares.Recovery(deps.Production),
		middlewares.RequestID(),
		cors.New(corsConfig(deps.CORSOrigins)),
		middlewares.ErrorHandler(deps.Production),
	)

	users := services.NewUserService(deps.Store.Users(), deps.Store.Orders(), deps.Tokens, deps.Notifier)
	products := services.NewProductService(deps.Store.Products(), deps.Cache)
	orders := services.NewOrderWorkflow(deps.Store.Orders(), deps.Gateway, deps.Notifier)

	auth := middlewares.Authenticate(deps.Tokens, deps.Store.Users())

	DefaultRoutes(server)
	UserRoutes(server, controllers.NewUserController(users), auth)
	ProductRoutes(server, controllers.NewProductController(products), auth)
	OrderRoutes(server, controllers.NewOrderController(orders), auth)
	UploadRoutes(server, controllers.NewUploadController(deps.Uploader), auth)
	WebhookRoutes(server, controllers.NewWebhookController(deps.WebhookSecret))

	return server
}
