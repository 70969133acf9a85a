package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ewesolon/gestaoescolar-sub002/internal/db"
	"github.com/ewesolon/gestaoescolar-sub002/internal/demand"
	"github.com/ewesolon/gestaoescolar-sub002/internal/logger"
	"github.com/ewesolon/gestaoescolar-sub002/internal/menu"
	"github.com/ewesolon/gestaoescolar-sub002/internal/middleware"
	"github.com/ewesolon/gestaoescolar-sub002/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"JWT_SECRET",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	slogger := logger.New()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── EXPORT ARCHIVE (OPTIONAL) ─────────────────────────
	var archive demand.Archiver
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
		archive = r2Client
		slogger.Info("export archiving enabled")
	} else {
		slogger.Info("export archiving disabled (R2 env vars not set)")
	}

	// ───────────────────────── REPOS ─────────────────────────
	gateway := demand.NewPostgresGateway(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	demandService := demand.NewService(gateway, archive, slogger)
	menuService := menu.NewService(menuRepo, gateway, slogger)

	// ───────────────────────── HANDLERS ─────────────────────────
	demandHandler := demand.NewHandler(demandService)
	menuHandler := menu.NewHandler(menuService)

	// ───────────────────────── DEMAND ROUTES ─────────────────────────
	demandGroup := r.Group("/demand")
	demandGroup.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("NUTRICIONISTA", "ADMIN"),
	)
	{
		demandGroup.POST("/generate", demandHandler.Generate)
		demandGroup.POST("/generate-multi", demandHandler.GenerateMulti)
		demandGroup.POST("/export-excel", demandHandler.ExportExcel)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menuGroup := r.Group("/menu")
	menuGroup.Use(middleware.AuthMiddleware())
	{
		menuGroup.GET("/:id/meal-costs", menuHandler.MealCosts)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("API running at http://localhost:" + port)
	r.Run(":" + port)
}
