package api

import (
	"net/http"
	"sync"

	"heat-optimizer/internal/api/handlers"
	"heat-optimizer/internal/api/middleware"
	"heat-optimizer/internal/catalog"
	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/ledger"
	"heat-optimizer/internal/optimizer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the components the HTTP surface exposes.
type Deps struct {
	Catalog  *catalog.Catalog
	Defaults *catalog.Defaults
	Demand   *demand.Series
	Store    ledger.Store
	Engine   *optimizer.Engine

	AllowedOrigins []string
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	var mu sync.Mutex
	optimizeHandler := handlers.NewOptimizeHandler(d.Engine, d.Store, &mu, log)
	unitHandler := handlers.NewUnitHandler(d.Catalog, d.Defaults, &mu)
	demandHandler := handlers.NewDemandHandler(d.Demand)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/optimize", optimizeHandler.Optimize)
		v1.GET("/results", optimizeHandler.Results)

		v1.GET("/units", unitHandler.ListUnits)
		v1.PUT("/units/:name", unitHandler.UpdateUnit)
		v1.POST("/units/:name/disable", unitHandler.DisableUnit)
		v1.POST("/units/:name/enable", unitHandler.EnableUnit)

		v1.GET("/scenarios", unitHandler.ListScenarios)
		v1.POST("/scenarios/:id/apply", unitHandler.ApplyScenario)

		v1.GET("/demand", demandHandler.GetRange)
		v1.GET("/demand/:profile", demandHandler.GetProfile)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
