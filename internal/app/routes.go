package app

import (
	"fmt"

	"finbook/internal/auth"
	"finbook/internal/cache"
	"finbook/internal/config"
	"finbook/internal/handlers"
	"finbook/internal/repo"
	"finbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) error {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	if err != nil {
		return fmt.Errorf("auth tokens: %w", err)
	}

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(tokens, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAuth(tokens))

	categoryRepo := repo.NewPGCategoryRepo(db)
	transactionRepo := repo.NewPGTransactionRepo(db)
	reportCache := cache.NewReportCache(rdb, cfg.Redis.DefaultTTL.Duration())

	categorySvc := service.NewCategoryService(categoryRepo, transactionRepo)
	transactionSvc := service.NewTransactionService(transactionRepo, categoryRepo, reportCache)
	reportSvc := service.NewReportService(transactionRepo, reportCache)

	registerCategoryRoutes(protected, handlers.NewCategoryHandler(categorySvc))
	registerTransactionRoutes(protected,
		handlers.NewTransactionHandler(transactionSvc),
		handlers.NewReportHandler(reportSvc))

	return nil
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Finbook API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.GET("/categories", h.List)
	api.POST("/categories", h.Create)
	api.DELETE("/categories/:id", h.Delete)
}

func registerTransactionRoutes(api *gin.RouterGroup, h *handlers.TransactionHandler, r *handlers.ReportHandler) {
	api.GET("/transactions", h.List)
	api.POST("/transactions", h.Create)
	api.GET("/transactions/summary", r.Summary)
	api.GET("/transactions/:id", h.GetByID)
	api.PUT("/transactions/:id", h.Update)
	api.DELETE("/transactions/:id", h.Delete)
	api.GET("/reports/breakdown", r.Breakdown)
}
