package routes

import (
	"time"

	"medvault/config"
	"medvault/handlers"
	"medvault/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Register)
		api.POST("/login", hb.Login)
		api.GET("/verify-email/:token", hb.VerifyEmail)

		api.Use(middleware.JWTAuth())
		api.POST("/logout", hb.Logout)
		api.GET("/me", hb.GetMe)
		api.PUT("/profile", hb.UpdateProfile)
		api.POST("/preferred-doctors", middleware.RequirePatient(), hb.AddPreferredDoctor)
	}
}

// RegisterProfessionalRoutes registers the public doctor directory patients
// browse when booking.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.GET("", hb.ListProfessionals)
		api.GET("/:id", hb.GetProfessional)
	}
}

// RegisterAvailabilityRoutes registers the slot scheduler endpoints. Reading
// a doctor's availability is public; mutations are owner-only.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:doctorId", hb.GetDoctorAvailability)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(), middleware.RequireProfessional())
		protected.POST("", hb.AddAvailability)
		protected.PUT("/:id", hb.UpdateAvailability)
		protected.DELETE("/:id", hb.DeleteAvailability)
	}
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuth())
	{
		api.POST("", middleware.RequirePatient(), hb.BookAppointment)
		api.GET("/my", hb.MyAppointments)
		api.PUT("/:id/status", middleware.RequireProfessional(), hb.UpdateAppointmentStatus)
		api.PUT("/:id/cancel", middleware.RequirePatient(), hb.CancelAppointment)
	}
}

// RegisterConsentRoutes registers record-access consent endpoints.
func RegisterConsentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/consents")
	api.Use(middleware.JWTAuth())
	{
		api.POST("/request", middleware.RequireProfessional(), hb.RequestConsent)
		api.GET("/pending", middleware.RequirePatient(), hb.PendingConsents)
		api.GET("/my", hb.MyConsents)
		api.PUT("/:id/approve", middleware.RequirePatient(), hb.ApproveConsent)
		api.PUT("/:id/reject", middleware.RequirePatient(), hb.RejectConsent)
		api.DELETE("/:id", middleware.RequirePatient(), hb.RevokeConsent)
	}
}

// RegisterRecordRoutes registers medical record endpoints.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/records")
	api.Use(middleware.JWTAuth())
	{
		api.POST("", hb.CreateRecord)
		api.GET("/me", middleware.RequirePatient(), hb.MyRecords)
		api.GET("/patient/:patientId", hb.PatientRecords)
		api.GET("/type/:recordType", middleware.RequirePatient(), hb.RecordsByType)
		api.PUT("/:id", hb.UpdateRecord)
		api.POST("/:id/documents", hb.AddRecordDocument)
		api.DELETE("/:id", hb.DeleteRecord)
	}
}

// RegisterFeedbackRoutes registers appointment feedback endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/feedback")
	{
		api.GET("/doctor/:doctorId", hb.DoctorFeedback)
		api.POST("/:appointmentId", middleware.JWTAuth(), middleware.RequirePatient(), hb.AddFeedback)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuth())
	{
		api.GET("", hb.ListNotifications)
		api.GET("/unread/count", hb.UnreadNotificationCount)
		api.PUT("/read/all", hb.MarkAllNotificationsRead)
		api.PUT("/:id/read", hb.MarkNotificationRead)
		api.DELETE("/:id", hb.DeleteNotification)
	}
}

// RegisterReminderRoutes registers reminder endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	api.Use(middleware.JWTAuth())
	{
		api.POST("", hb.CreateReminder)
		api.GET("", hb.ListReminders)
		api.GET("/upcoming", hb.UpcomingReminders)
		api.PUT("/:id", hb.UpdateReminder)
		api.PUT("/:id/complete", hb.CompleteReminder)
		api.DELETE("/:id", hb.DeleteReminder)
	}
}

// RegisterHealthRoute registers the health snapshot endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	allowOrigins := []string{"*"}
	if config.AppConfig.FrontendURL != "" {
		allowOrigins = []string{config.AppConfig.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit())

	RegisterUserRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterConsentRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterHealthRoute(r)
}
