package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"stayease/config"
	"stayease/cron"
	"stayease/database"
	availabilityRepo "stayease/database/repository/availability"
	bookingRepo "stayease/database/repository/booking"
	hotelRepo "stayease/database/repository/hotel"
	userRepoPkg "stayease/database/repository/user"
	"stayease/handlers"
	"stayease/middleware"
	"stayease/routes"
	"stayease/services/availability"
	"stayease/services/booking"
	"stayease/services/hotel"
	"stayease/services/user"
	"stayease/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	htlRepo := hotelRepo.NewMongoHotelRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// task queue for the favorites cleanup fan-out.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	cron.InitCleanupWorker(usrRepo)

	// services.
	availabilityService := &availability.DefaultService{
		Repo:  availRepo,
		Cache: utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultService{
		Repo:   bkRepo,
		Hotels: htlRepo,
		Cache:  utils.GetCacheClient(),
	}
	hotelService := &hotel.DefaultService{
		Repo:  htlRepo,
		Queue: queueClient,
	}
	userService := &user.DefaultUserService{
		Repo: usrRepo,
	}

	// Register routes with the assembled handlers.
	routes.RegisterRoutes(router, &routes.Handlers{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Hotel:        handlers.NewHotelHandler(hotelService),
		User:         handlers.NewUserHandler(userService),
	})

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
