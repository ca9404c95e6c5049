package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medvault/config"
	"medvault/cron"
	"medvault/database"
	appointmentRepo "medvault/database/repository/appointment"
	availabilityRepo "medvault/database/repository/availability"
	consentRepo "medvault/database/repository/consent"
	feedbackRepo "medvault/database/repository/feedback"
	notificationRepo "medvault/database/repository/notification"
	recordRepo "medvault/database/repository/record"
	reminderRepo "medvault/database/repository/reminder"
	userRepoPkg "medvault/database/repository/user"
	"medvault/handlers"
	"medvault/routes"
	"medvault/services/consent"
	"medvault/services/notification"
	"medvault/services/records"
	"medvault/services/reminder"
	"medvault/services/scheduling"
	"medvault/services/storage"
	"medvault/services/user"
	"medvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	documentStore, err := storage.NewCloudinaryStore()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document store: %v", err)
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	consRepo := consentRepo.NewMongoConsentRepo()
	recRepo := recordRepo.NewMongoRecordRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	remRepo := reminderRepo.NewMongoReminderRepo()
	fbRepo := feedbackRepo.NewMongoFeedbackRepo()

	mailer := utils.NewSMTPMailer()

	// Services.
	notificationService := &notification.DefaultNotificationService{
		Repo:   notifRepo,
		Users:  userRepo,
		Mailer: mailer,
		Cache:  utils.GetCacheClient(),
	}

	userService := &user.DefaultUserService{
		Repo:      userRepo,
		Mailer:    mailer,
		AuthCache: utils.GetAuthCacheClient(),
		BaseURL:   config.AppConfig.FrontendURL,
	}

	schedulingService := &scheduling.DefaultSchedulingService{
		Availability: availRepo,
		Appointments: apptRepo,
		Users:        userRepo,
		Feedback:     fbRepo,
		Notifier:     notificationService,
	}

	consentService := &consent.DefaultConsentService{
		Repo:     consRepo,
		Users:    userRepo,
		Notifier: notificationService,
	}

	recordService := &records.DefaultRecordService{
		Repo:     recRepo,
		Consents: consentService,
		Store:    documentStore,
		Notifier: notificationService,
	}

	reminderService := &reminder.DefaultReminderService{
		Repo:      remRepo,
		Scheduler: taskClient,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users:         userService,
		Scheduling:    schedulingService,
		Consents:      consentService,
		Records:       recordService,
		Reminders:     reminderService,
		Notifications: notificationService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder delivery.
	cron.InitReminderWorker(remRepo, notificationService, taskClient)

	utils.StartHealthMonitor(
		database.MongoClient,
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetReminderQueueClient(),
	)

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
