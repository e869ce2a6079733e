package routes

import (
	"smarthelmet-backend/internal/api/handlers"
	"smarthelmet-backend/internal/api/middleware"
	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/internal/websocket"
	"smarthelmet-backend/pkg/command"
	"smarthelmet-backend/pkg/jwt"
	"smarthelmet-backend/pkg/livecache"
	pkgredis "smarthelmet-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes wires repositories, services and handlers onto the
// router. The hardware status endpoint is unauthenticated: devices
// carry no tokens, only their bikeId.
func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *pkgredis.Client, hub *websocket.Hub, jwtUtil *jwt.JWTUtil) {
	userRepo := repository.NewUserRepository(db)
	bikeRepo := repository.NewBikeRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	rideRepo := repository.NewRideRepository(db)

	publisher := command.NewPublisher(redisClient.GetClient())
	live := livecache.New(redisClient.GetClient(), livecache.DefaultTTL)

	authService := services.NewAuthService(userRepo, jwtUtil)
	userService := services.NewUserService(userRepo)
	bikeService := services.NewBikeService(bikeRepo, userRepo, live)
	alertService := services.NewAlertService(alertRepo)
	hardwareService := services.NewHardwareService(bikeRepo, alertRepo, hub, live)
	adminService := services.NewAdminService(bikeRepo, publisher)
	analyticsService := services.NewAnalyticsService(rideRepo, alertRepo, bikeRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	bikeHandler := handlers.NewBikeHandler(bikeService)
	alertHandler := handlers.NewAlertHandler(alertService)
	hardwareHandler := handlers.NewHardwareHandler(hardwareService)
	adminHandler := handlers.NewAdminHandler(adminService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	wsHandler := handlers.NewWebSocketHandler(hub, jwtUtil)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	router.GET("/health", healthHandler.Health)
	router.GET("/ws", wsHandler.Connect)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.POST("/hardware/status", hardwareHandler.PostStatus)

		protected := api.Group("", middleware.AuthMiddleware(jwtUtil))
		{
			protected.GET("/users", userHandler.GetUsers)
			protected.GET("/users/:id", userHandler.GetUser)
			protected.PATCH("/users/:id", userHandler.UpdateProfile)

			protected.POST("/bikes", bikeHandler.RegisterBike)
			protected.GET("/bikes", bikeHandler.GetBikes)
			protected.GET("/bikes/:bikeId", bikeHandler.GetBike)
			protected.PATCH("/bikes/:bikeId", bikeHandler.UpdateBike)

			protected.GET("/alerts", alertHandler.GetAlerts)
			protected.PATCH("/alerts/:id/resolve", alertHandler.ResolveAlert)

			protected.GET("/reports/summary", analyticsHandler.GetSummary)

			analytics := protected.Group("/analytics")
			{
				analytics.GET("/dashboard", analyticsHandler.GetDashboard)
				analytics.GET("/timeseries", analyticsHandler.GetTimeseries)
				analytics.GET("/report", analyticsHandler.GetReport)
				analytics.GET("/fleet", analyticsHandler.GetFleetOverview)
				analytics.GET("/user/:id", analyticsHandler.GetUserStats)
			}

			admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/bike/:bikeId/ignition", adminHandler.SetIgnition)
				admin.POST("/pair", adminHandler.PairHelmet)
			}
		}
	}
}
