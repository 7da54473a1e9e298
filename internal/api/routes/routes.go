package routes

import (
	"html/template"

	"github.com/educacao-digital-ce/painel-indicadores/internal/api/handlers"
	"github.com/educacao-digital-ce/painel-indicadores/internal/config"
	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	middlewares "github.com/educacao-digital-ce/painel-indicadores/internal/middleware"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
	"github.com/educacao-digital-ce/painel-indicadores/internal/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.RequestID())
	r.Use(corsMiddleware())
	r.Use(middlewares.RequestTiming())
	r.SetHTMLTemplate(template.Must(handlers.LoadTemplates()))

	// o cache das bases vive enquanto o processo viver; POST /cache/reset descarta
	cache := dataset.NewCache()
	loader := dataset.NewLoader(cfg.DataDir, cfg.Mappings, cache)

	dashboardService := services.NewDashboardService(loader, narrative.Default(cfg.StateName), services.DashboardOptions{
		BaseYear:      cfg.BaseYear,
		TargetYear:    cfg.TargetYear,
		IDEBYear:      cfg.IDEBTargetYear,
		HistogramBins: cfg.HistogramBins,
		Estado:        cfg.StateName,
	})
	exportService := services.NewExportService(dashboardService)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	indicatorsHandler := handlers.NewIndicatorsHandler(dashboardService, exportService, cache)
	healthHandler := handlers.NewHealthHandler(loader)

	r.GET("/", dashboardHandler.Page)

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/metricas", indicatorsHandler.Metrics)
		api.GET("/comparativo", indicatorsHandler.Compare)
		api.GET("/comparativo/municipios", indicatorsHandler.Municipalities)
		api.GET("/percentis", indicatorsHandler.Percentiles)
		api.GET("/correlacao", indicatorsHandler.Correlation)
		api.GET("/resumo", indicatorsHandler.Summary)
		api.GET("/graficos/:tipo", indicatorsHandler.Chart)
		api.GET("/exportar.xlsx", indicatorsHandler.Export)
	}

	admin := api.Group("/cache")
	admin.Use(middlewares.RequireAdminToken(cfg.AdminToken))
	{
		admin.POST("/reset", indicatorsHandler.ResetCache)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
