package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	cfg       *Config
	jwtSecret []byte // from JWT_SECRET (dev fallback outside production)
)

func main() {
	// Load ./.env if present before reading config; existing vars win.
	_ = godotenv.Load()

	cfg = loadConfig()
	if cfg.Production() && cfg.JWTSecret == "dev_secret" {
		log.Fatal("JWT_SECRET must be set in production")
	}
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./nest-egg migrate`
	// Runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(r)

	log.Printf("listening on :%s (%s)", cfg.Port, cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
