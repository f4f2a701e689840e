package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamadospro/field-scheduler/internal/audit"
	"github.com/chamadospro/field-scheduler/internal/cache"
	"github.com/chamadospro/field-scheduler/internal/config"
	"github.com/chamadospro/field-scheduler/internal/handlers"
	infraRepo "github.com/chamadospro/field-scheduler/internal/infra/repository"
	"github.com/chamadospro/field-scheduler/internal/middleware"
	ucBooking "github.com/chamadospro/field-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, slotCache *cache.SlotCache) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	ticketRepo := infraRepo.NewTicketGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	slotsUC := ucBooking.NewGetAvailableSlots(ticketRepo, nil)

	createBookingUC := ucBooking.NewCreateBooking(
		ticketRepo,
		nil,
		auditDispatcher,
	)

	cancelTicketUC := ucBooking.NewCancelTicket(
		ticketRepo,
		auditDispatcher,
	)

	transitionTicketUC := ucBooking.NewTransitionTicket(
		ticketRepo,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListTicketsByDate(ticketRepo)
	listByMonthUC := ucBooking.NewListTicketsByMonth(ticketRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	ticketHandler := handlers.NewTicketHandler(
		db,
		createBookingUC,
		cancelTicketUC,
		transitionTicketUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, slotsUC, createBookingUC, slotCache)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (PÁGINA DE AGENDAMENTO)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/technician", publicHandler.GetTechnician)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/services/:id", publicHandler.GetService)
			publicAPI.GET("/:slug/availability", publicHandler.GetAvailability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

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
			secured.PATCH("/me", meHandler.UpdateMe)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", scheduleHandler.GetWorkingHours)
			secured.PUT("/me/working-hours", scheduleHandler.UpdateWorkingHours)
			secured.GET("/me/schedule-settings", scheduleHandler.GetSettings)
			secured.PATCH("/me/schedule-settings", scheduleHandler.UpdateSettings)

			// ------------------------------
			// TICKETS
			// ------------------------------
			secured.POST("/me/tickets", ticketHandler.Create)
			secured.GET("/me/tickets", ticketHandler.ListByDate)
			secured.GET("/me/tickets/month", ticketHandler.ListByMonth)
			secured.PATCH("/me/tickets/:id/cancel", ticketHandler.Cancel)
			secured.PATCH("/me/tickets/:id/start", ticketHandler.Start)
			secured.PATCH("/me/tickets/:id/complete", ticketHandler.Complete)
			secured.PATCH("/me/tickets/:id/no-show", ticketHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
