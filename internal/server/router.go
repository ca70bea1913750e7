package server

import (
	"recircle-core/internal/handler"
	"recircle-core/internal/handler/response"
	"recircle-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the wired handler set for route registration.
type Handlers struct {
	Claims  *handler.ClaimHandler
	Scans   *handler.ScanHandler
	Wallets *handler.WalletHandler
}

// NewHTTPRouter builds the gin engine and registers all routes.
func NewHTTPRouter(h Handlers, jwtSecret string) *gin.Engine {
	monitor.Init()

	// Default middleware: Logger, Recovery
	r := gin.Default()

	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		authed := api.Group("")
		authed.Use(handler.AuthMiddleware(jwtSecret))
		{
			authed.POST("/claims", h.Claims.Create)
			authed.POST("/claims/:id/approve", h.Claims.Approve)

			authed.POST("/scan/claim-out", h.Scans.ClaimOut)
			authed.POST("/scan/drop-off", h.Scans.DropOffIn)
			authed.POST("/scan/drop-off/reject", h.Scans.DropOffReject)
			authed.POST("/scan/recycle-in", h.Scans.RecycleIn)
			authed.POST("/scan/recycle-out", h.Scans.RecycleOut)
			authed.POST("/scan/item-view", h.Scans.ItemView)

			authed.POST("/items/:id/complete", h.Scans.CompleteManual)
			authed.GET("/items/:id/scans", h.Scans.Trail)

			authed.GET("/wallet", h.Wallets.GetWallet)
			authed.GET("/wallet/ledger", h.Wallets.GetLedger)
		}
	}

	return r
}
