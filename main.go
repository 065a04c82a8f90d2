package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gonchi028/proyecto-integrador-vps-sub000/config"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/database"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/middlewares"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/router"
	"github.com/gonchi028/proyecto-integrador-vps-sub000/utils"
)

func init() {
	// Cargar .env antes que todo
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InitDB(db)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	database.Normalize(db)
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Rate limiter global (50 req/s por IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := cfg.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
