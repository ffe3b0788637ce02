package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tributo/internal/config"
	_ "tributo/internal/docs"
	"tributo/internal/handler"
	"tributo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log zerolog.Logger,
	declarationH *handler.DeclarationHandler,
	payrollH *handler.PayrollHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Server.Environment != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	f29 := v1.Group("/f29")
	f29.GET("/catalogue", declarationH.Catalogue)
	f29.POST("/parse", declarationH.Parse)

	if cfg.Archive.Enabled {
		decls := f29.Group("/declarations")
		decls.GET("", declarationH.List)
		decls.GET("/export.csv", declarationH.ExportCSV)
		decls.GET("/:id", declarationH.GetByID)
		decls.GET("/:id/download", declarationH.Download)
		decls.GET("/:id/export.xlsx", declarationH.ExportXLSX)
		decls.POST("/:id/reparse", declarationH.Reparse)
		decls.DELETE("/:id", declarationH.Delete)
	}

	payroll := v1.Group("/payroll")
	payroll.POST("/reconcile", payrollH.Reconcile)

	return r
}
