package router

import (
	"time"

	"lesson-reservations/internal/api/handlers"
	"lesson-reservations/internal/api/middleware"
	"lesson-reservations/internal/auth"
	"lesson-reservations/internal/config"
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/infrastructure/cache"
	"lesson-reservations/internal/infrastructure/notification"
	"lesson-reservations/internal/infrastructure/repository"
	"lesson-reservations/internal/infrastructure/spreadsheet"
	"lesson-reservations/internal/service"
	"lesson-reservations/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires the full HTTP surface: repositories, services, handlers
// and route groups. The admin group requires the admin role; the self-service
// group only requires an authenticated participant.
func NewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(cors.Default())
	r.Use(gin.Recovery())

	cfg := config.Get()

	lessonRepo := repository.NewLessonRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)

	var availabilityCache domain.AvailabilityCache
	if cfg.Cache.Type == "redis" {
		availabilityCache = cache.NewRedisCacheWithConfig(&cfg.Cache)
		logger.Info("Using Redis availability cache")
	} else {
		availabilityCache = cache.NewNoopCache()
		logger.Info("Availability cache disabled")
	}

	notifier := notification.NewService(notification.Config{
		APIKey:     cfg.Notification.SendgridAPIKey,
		FromName:   cfg.Notification.FromName,
		FromEmail:  cfg.Notification.FromEmail,
		AdminEmail: cfg.Notification.AdminEmail,
	})

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: time.Duration(cfg.Auth.TokenExpMinutes) * time.Minute,
		TokenIssuer:    cfg.Auth.TokenIssuer,
	})

	registrationService := service.NewRegistrationService(
		lessonRepo,
		participantRepo,
		registrationRepo,
		notifier,
		availabilityCache,
		cfg.Registration.AllowDuplicateDirect,
	)
	bulkService := service.NewBulkAssignmentService(
		lessonRepo,
		participantRepo,
		registrationRepo,
		courseRepo,
		availabilityCache,
	)
	lessonService := service.NewLessonService(lessonRepo, availabilityCache)
	courseService := service.NewCourseService(courseRepo, lessonRepo, availabilityCache)
	authService := service.NewAuthService(userRepo, jwtService)
	intakeService := service.NewIntakeService(spreadsheet.NewParticipantLoader(), registrationService)

	lessonHandler := handlers.NewLessonHandler(lessonService)
	courseHandler := handlers.NewCourseHandler(courseService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	selfServiceHandler := handlers.NewSelfServiceHandler(registrationService)
	adminHandler := handlers.NewAdminHandler(registrationService, bulkService)
	participantHandler := handlers.NewParticipantHandler(participantRepo)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		lessons := v1.Group("/lessons")
		{
			lessons.GET("", lessonHandler.GetLessons)
			lessons.GET("/substitutions", registrationHandler.GetSubstitutionLessons)
			lessons.GET("/:id", lessonHandler.GetLesson)
			lessons.GET("/:id/registrations", registrationHandler.GetLessonRegistrations)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseHandler.GetCourses)
			courses.GET("/:id", courseHandler.GetCourse)
			courses.GET("/:id/lessons", lessonHandler.GetCourseLessons)
		}

		registrations := v1.Group("/registrations")
		{
			registrations.POST("", registrationHandler.Register)
			registrations.POST("/bulk", registrationHandler.BulkRegister)
			registrations.POST("/:id/cancel", registrationHandler.Cancel)
		}

		me := v1.Group("/me", middleware.Authenticate(jwtService))
		{
			me.GET("/registrations", selfServiceHandler.Registrations)
			me.POST("/registrations", selfServiceHandler.Register)
			me.POST("/registrations/:id/cancel", selfServiceHandler.Cancel)
			me.POST("/registrations/:id/transfer", selfServiceHandler.Transfer)
			me.GET("/lessons/available", selfServiceHandler.AvailableLessons)
		}

		admin := v1.Group("/admin", middleware.Authenticate(jwtService), middleware.RequireAdmin())
		{
			admin.POST("/lessons", lessonHandler.CreateLesson)
			admin.PATCH("/lessons/:id", lessonHandler.UpdateLesson)
			admin.POST("/lessons/bulk-update", lessonHandler.BulkUpdateLessons)
			admin.POST("/lessons/bulk-delete", lessonHandler.BulkDeleteLessons)

			admin.POST("/courses", courseHandler.CreateCourse)
			admin.POST("/courses/:id/members", courseHandler.AddMember)
			admin.POST("/courses/:id/lessons", courseHandler.ExpandTemplate)
			admin.POST("/courses/:id/lessons/weekly", courseHandler.CreateWeeklyLessons)

			admin.GET("/participants", participantHandler.GetParticipants)
			admin.POST("/participants", participantHandler.CreateParticipant)
			admin.GET("/participants/:id", participantHandler.GetParticipant)
			admin.GET("/participants/:id/registrations", registrationHandler.GetParticipantRegistrations)

			admin.POST("/registrations/force", adminHandler.ForceRegister)
			admin.POST("/registrations/:id/cancel", adminHandler.ForceCancel)
			admin.POST("/registrations/bulk", adminHandler.BulkRegister)
			admin.POST("/assignments", adminHandler.BulkAssign)
			admin.POST("/assignments/course", adminHandler.AssignCourse)

			admin.POST("/imports", intakeHandler.Import)
			admin.POST("/users", authHandler.CreateUser)
		}
	}

	return r
}
