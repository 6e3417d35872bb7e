package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/handlers"
	"github.com/alysonbarber/agenda-api/internal/infra/cache"
	infraRepo "github.com/alysonbarber/agenda-api/internal/infra/repository"
	"github.com/alysonbarber/agenda-api/internal/infra/storage"
	"github.com/alysonbarber/agenda-api/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// snapshot do dia em Redis, só para o caminho de exibição
	snapshots := cache.NewSnapshotCache(rdb, appointmentRepo)

	mediaStorage := storage.NewMediaStorage(cfg)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, cfg)
	shopHandler := handlers.NewShopHandler(cfg)

	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db, mediaStorage)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, auditDispatcher, snapshots)
	publicHandler := handlers.NewPublicHandler(db, cfg, auditDispatcher, snapshots)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (site de agendamento)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shop", shopHandler.GetShop)
			publicAPI.GET("/business-hours", shopHandler.BusinessHours)

			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)

			publicAPI.GET("/availability", publicHandler.Availability)

			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments", publicHandler.SearchByPhone)
			publicAPI.PATCH("/appointments/:code/cancel", publicHandler.CancelByCode)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (painel)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id", barberHandler.Update)
			secured.POST("/me/barbers/:id/photo", barberHandler.UploadPhoto)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/week", appointmentHandler.ListByWeek)
			secured.GET("/me/appointments/stats", appointmentHandler.Stats)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/me/appointments/cleanup", appointmentHandler.Cleanup)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
