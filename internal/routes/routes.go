package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	"github.com/vetlinkbr/vetlink-telehealth/internal/config"
	"github.com/vetlinkbr/vetlink-telehealth/internal/handlers"
	infraRepo "github.com/vetlinkbr/vetlink-telehealth/internal/infra/repository"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/settings"
	ucBooking "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/booking"
	ucSession "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/session"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, cache *redis.Client) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	sessionRepo := infraRepo.NewSessionGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	settingsProvider := settings.NewProvider(db, cache, cfg.JoinWindowMinutes)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(
		bookingRepo,
	)

	checkJoinableUC := ucBooking.NewCheckJoinable(
		bookingRepo,
		settingsProvider,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo)

	// ======================================================
	// 🧠 USE CASES — SESSIONS
	// ======================================================
	getOrCreateSessionUC := ucSession.NewGetOrCreateSession(
		sessionRepo,
		bookingRepo,
		auditDispatcher,
	)

	startSessionUC := ucSession.NewStartSession(sessionRepo)

	endSessionUC := ucSession.NewEndSession(
		sessionRepo,
		completeBookingUC,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	petHandler := handlers.NewPetHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		listBookingsByDateUC,
		checkJoinableUC,
		bookingRepo,
	)

	sessionHandler := handlers.NewSessionHandler(
		getOrCreateSessionUC,
		startSessionUC,
		endSessionUC,
		sessionRepo,
	)

	messageHandler := handlers.NewMessageHandler(db, sessionRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsProvider)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/pets", petHandler.List)
			secured.POST("/me/pets", petHandler.Create)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			// confirmar é ato do veterinário; o tutor remarca/cancela
			secured.PATCH("/me/bookings/:id/confirm",
				middleware.RequireRole(models.RoleVeterinarian),
				bookingHandler.Confirm,
			)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.GET("/me/bookings/:id/joinable", bookingHandler.Joinable)
			secured.GET("/me/bookings/:id/actions", bookingHandler.ActionLog)

			// ------------------------------
			// SESSIONS (vídeo)
			// ------------------------------
			secured.POST("/me/bookings/:id/session", sessionHandler.GetOrCreate)
			secured.GET("/me/sessions/:id", sessionHandler.GetByID)
			secured.GET("/me/consultations/:id/session", sessionHandler.ResolveByConsultation)
			secured.PATCH("/me/sessions/:id/start", sessionHandler.Start)
			secured.PATCH("/me/sessions/:id/end", sessionHandler.End)

			// ------------------------------
			// CHAT (polling)
			// ------------------------------
			secured.POST("/me/sessions/:id/messages", messageHandler.Post)
			secured.GET("/me/sessions/:id/messages", messageHandler.List)

			// ------------------------------
			// SETTINGS / AUDIT
			// ------------------------------
			secured.GET("/me/settings", settingsHandler.Get)
			secured.PATCH("/me/settings",
				middleware.RequireRole(models.RoleAdmin),
				settingsHandler.Update,
			)

			secured.GET("/me/audit-logs",
				middleware.RequireRole(models.RoleAdmin),
				auditLogsHandler.List,
			)
		}
	}
}
