package main

import (
	"log"

	"smarthelmet-backend/internal/api/routes"
	"smarthelmet-backend/internal/config"
	"smarthelmet-backend/internal/websocket"
	"smarthelmet-backend/pkg/database"
	"smarthelmet-backend/pkg/jwt"
	pkgredis "smarthelmet-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect(db.Client())

	redisClient := pkgredis.NewClient(cfg.Redis)
	defer redisClient.Close()

	hub := websocket.NewHub()
	if err := hub.Start(); err != nil {
		log.Fatalf("Failed to start WebSocket hub: %v", err)
	}
	defer hub.Stop()

	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiry)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, redisClient, hub, jwtUtil)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
