package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/handlers"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	departmentHandler := handlers.NewDepartmentHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Department directory, readable by every authenticated role
		private.GET("/departments", departmentHandler.ListDepartments)

		// Doctor directory
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.SearchDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.GET("/:id/availability", availabilityHandler.ListAvailability)

			adminDoctorRoutes := doctorRoutes.Group("")
			adminDoctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminDoctorRoutes.POST("", doctorHandler.AddDoctor)
				adminDoctorRoutes.DELETE("/:id", doctorHandler.RemoveDoctor)
			}
		}

		// Availability publishing is doctor-only
		private.POST("/availability", middleware.RoleAuthMiddleware(models.RoleDoctor), availabilityHandler.AddAvailability)

		// Patient directory and profile
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.ListPatients)
			patientRoutes.GET("/me", middleware.RoleAuthMiddleware(models.RolePatient), patientHandler.GetMyProfile)
			patientRoutes.PUT("/me", middleware.RoleAuthMiddleware(models.RolePatient), patientHandler.UpdateMyProfile)
			patientRoutes.GET("/:id/history", middleware.RoleAuthMiddleware(models.RoleDoctor), patientHandler.GetPatientHistory)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.Book)
			appointmentRoutes.POST("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.Cancel)
			appointmentRoutes.POST("/:id/complete", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.Complete)
			appointmentRoutes.GET("/mine", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.ListMine)
			appointmentRoutes.GET("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.ListForDoctor)
			appointmentRoutes.GET("/doctor/upcoming", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.ListUpcomingForDoctor)
			appointmentRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.ListAll)
		}

		// Role-specific dashboards
		dashboardRoutes := private.Group("/dashboard")
		{
			dashboardRoutes.GET("/admin", middleware.RoleAuthMiddleware(models.RoleAdmin), dashboardHandler.GetAdminDashboard)
			dashboardRoutes.GET("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor), dashboardHandler.GetDoctorDashboard)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
