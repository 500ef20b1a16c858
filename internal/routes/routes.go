package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/audit"
	"github.com/agendafacil/agenda-saas/internal/cache"
	"github.com/agendafacil/agenda-saas/internal/config"
	"github.com/agendafacil/agenda-saas/internal/handlers"
	infraRepo "github.com/agendafacil/agenda-saas/internal/infra/repository"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/payments"
	"github.com/agendafacil/agenda-saas/internal/storage"
	ucAgenda "github.com/agendafacil/agenda-saas/internal/usecase/agenda"
	"github.com/agendafacil/agenda-saas/internal/whatsapp"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	agendaRepo := infraRepo.NewAgendaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	permissionCache := cache.NewPermissionCache(cfg)
	resolver := middleware.NewPermissionResolver(db, permissionCache)

	storageClient := storage.New(
		cfg.StorageEndpoint,
		cfg.StorageRegion,
		cfg.StorageBucket,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
	)

	gateway, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Fatal("mercadopago config:", err)
	}

	whatsappClient := whatsapp.New(cfg.EvolutionAPIURL, cfg.EvolutionAPIKey)

	// ======================================================
	// USE CASES — AGENDA
	// ======================================================
	createAppointmentUC := ucAgenda.NewCreateAppointment(agendaRepo, auditDispatcher)
	updateAppointmentUC := ucAgenda.NewUpdateAppointment(agendaRepo, auditDispatcher)
	deleteAppointmentUC := ucAgenda.NewDeleteAppointment(agendaRepo, auditDispatcher)
	getAgendaUC := ucAgenda.NewGetAgenda(agendaRepo)
	checkSlotUC := ucAgenda.NewCheckSlot(agendaRepo)
	syncAvailabilitiesUC := ucAgenda.NewSyncAvailabilities(agendaRepo)
	syncBusinessHoursUC := ucAgenda.NewSyncBusinessHours(agendaRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	permissionHandler := handlers.NewPermissionHandler(db, resolver)
	tenantHandler := handlers.NewTenantHandler(db)
	moduleHandler := handlers.NewModuleHandler(db)
	statusHandler := handlers.NewStatusHandler(db)

	studentHandler := handlers.NewStudentHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db)
	providerHandler := handlers.NewProviderHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		getAgendaUC,
		checkSlotUC,
		agendaRepo,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(db, syncAvailabilitiesUC, agendaRepo)
	businessHourHandler := handlers.NewBusinessHourHandler(db, syncBusinessHoursUC, agendaRepo)
	blockHandler := handlers.NewBlockHandler(db, agendaRepo)

	fileHandler := handlers.NewFileHandler(db, storageClient)

	commissionService := handlers.NewCommissionService(db)
	transactionHandler := handlers.NewTransactionHandler(db, gateway, auditDispatcher, commissionService)
	commissionHandler := handlers.NewCommissionHandler(db, auditDispatcher)
	financialConfigHandler := handlers.NewFinancialConfigHandler(db)
	financialReportHandler := handlers.NewFinancialReportHandler(db)

	whatsappHandler := handlers.NewWhatsappHandler(db, whatsappClient)
	auditLogHandler := handlers.NewAuditLogHandler(db)

	perm := func(key string) gin.HandlerFunc {
		return middleware.RequirePermission(resolver, key)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// ADMIN (tenants e módulos)
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/tenants", tenantHandler.List)
				admin.GET("/tenants/:id", tenantHandler.Get)
				admin.POST("/tenants", tenantHandler.Create)
				admin.PATCH("/tenants/:id", tenantHandler.Update)
				admin.DELETE("/tenants/:id", tenantHandler.Destroy)
				admin.DELETE("/tenants", tenantHandler.Destroy)

				admin.GET("/modules", moduleHandler.List)
			}

			secured.GET("/modules", moduleHandler.ListForTenant)

			// ------------------------------
			// USUÁRIOS E PERMISSÕES
			// ------------------------------
			secured.GET("/users", perm("users.view"), userHandler.List)
			secured.GET("/users/:id", perm("users.view"), userHandler.Get)
			secured.POST("/users", perm("users.manage"), userHandler.Create)
			secured.PATCH("/users/:id", perm("users.manage"), userHandler.Update)
			secured.DELETE("/users/:id", perm("users.manage"), userHandler.Destroy)
			secured.DELETE("/users", perm("users.manage"), userHandler.Destroy)

			secured.GET("/permissions", perm("users.manage"), permissionHandler.ListCatalog)
			secured.GET("/users/:id/permissions", perm("users.manage"), permissionHandler.GetUserPermissions)
			secured.PUT("/users/:id/permissions", perm("users.manage"), permissionHandler.SaveUserPermissions)

			// ------------------------------
			// CATÁLOGOS DE STATUS
			// ------------------------------
			secured.GET("/status-agenda", statusHandler.ListAgenda)
			secured.GET("/status-agenda/:id", statusHandler.GetAgenda)
			secured.GET("/status-students", statusHandler.ListStudent)
			secured.GET("/status-students/:id", statusHandler.GetStudent)

			// ------------------------------
			// ALUNOS
			// ------------------------------
			secured.GET("/students", perm("students.view"), studentHandler.List)
			secured.GET("/students/:id", perm("students.view"), studentHandler.Get)
			secured.POST("/students", perm("students.manage"), studentHandler.Create)
			secured.PATCH("/students/:id", perm("students.manage"), studentHandler.Update)
			secured.DELETE("/students/:id", perm("students.manage"), studentHandler.Destroy)
			secured.DELETE("/students", perm("students.manage"), studentHandler.Destroy)

			secured.GET("/students/:id/notes", perm("students.view"), studentHandler.ListNotes)
			secured.POST("/students/:id/notes", perm("students.manage"), studentHandler.CreateNote)
			secured.DELETE("/students/:id/notes/:note_id", perm("students.manage"), studentHandler.DeleteNote)

			secured.GET("/students/:id/documents", perm("students.view"), studentHandler.ListDocuments)
			secured.POST("/students/:id/documents", perm("students.manage"), studentHandler.CreateDocument)
			secured.DELETE("/students/:id/documents/:document_id", perm("students.manage"), studentHandler.DeleteDocument)

			// ------------------------------
			// ARQUIVOS
			// ------------------------------
			secured.GET("/files", perm("files.view"), fileHandler.List)
			secured.POST("/files", perm("files.manage"), fileHandler.Upload)
			secured.GET("/files/:id", perm("files.view"), fileHandler.Show)
			secured.GET("/files/:id/download", perm("files.view"), fileHandler.Download)
			secured.DELETE("/files/:id", perm("files.manage"), fileHandler.Destroy)
			secured.DELETE("/files", perm("files.manage"), fileHandler.Destroy)

			// ------------------------------
			// AGENDA
			// ------------------------------
			ag := secured.Group("/agenda")
			{
				ag.GET("/services", perm("agenda.services.view"), serviceHandler.List)
				ag.GET("/services/:id", perm("agenda.services.view"), serviceHandler.Get)
				ag.GET("/services/:id/prices", perm("agenda.services.view"), serviceHandler.ListPrices)
				ag.POST("/services", perm("agenda.services.manage"), serviceHandler.Create)
				ag.PATCH("/services/:id", perm("agenda.services.manage"), serviceHandler.Update)
				ag.DELETE("/services/:id", perm("agenda.services.manage"), serviceHandler.Destroy)
				ag.DELETE("/services", perm("agenda.services.manage"), serviceHandler.Destroy)

				ag.GET("/providers", perm("agenda.providers.view"), providerHandler.List)
				ag.GET("/providers/:provider_id", perm("agenda.providers.view"), providerHandler.Get)
				ag.POST("/providers", perm("agenda.providers.manage"), providerHandler.Create)
				ag.PATCH("/providers/:provider_id", perm("agenda.providers.manage"), providerHandler.Update)
				ag.DELETE("/providers/:provider_id", perm("agenda.providers.manage"), providerHandler.Destroy)
				ag.DELETE("/providers", perm("agenda.providers.manage"), providerHandler.Destroy)

				ag.GET("/providers/:provider_id/availabilities", perm("agenda.appointments.view"), availabilityHandler.List)
				ag.PUT("/providers/:provider_id/availabilities/sync", perm("agenda.providers.manage"), availabilityHandler.Sync)
				ag.DELETE("/providers/:provider_id/availabilities/:id", perm("agenda.providers.manage"), availabilityHandler.Delete)

				ag.GET("/providers/:provider_id/blocks", perm("agenda.appointments.view"), blockHandler.List)
				ag.POST("/providers/:provider_id/blocks", perm("agenda.providers.manage"), blockHandler.Create)
				ag.PATCH("/providers/:provider_id/blocks/:id", perm("agenda.providers.manage"), blockHandler.Update)
				ag.DELETE("/providers/:provider_id/blocks/:id", perm("agenda.providers.manage"), blockHandler.Delete)

				ag.GET("/providers/:provider_id/full", perm("agenda.appointments.view"), appointmentHandler.GetAgenda)

				ag.GET("/appointments", perm("agenda.appointments.view"), appointmentHandler.List)
				ag.GET("/appointments/:id", perm("agenda.appointments.view"), appointmentHandler.Get)
				ag.POST("/appointments", perm("agenda.appointments.manage"), appointmentHandler.Create)
				ag.PATCH("/appointments/:id", perm("agenda.appointments.manage"), appointmentHandler.Update)
				ag.DELETE("/appointments/:id", perm("agenda.appointments.manage"), appointmentHandler.Destroy)

				ag.GET("/check-slot", perm("agenda.appointments.view"), appointmentHandler.CheckSlot)
			}

			// ------------------------------
			// HORÁRIO DE FUNCIONAMENTO DO TENANT
			// ------------------------------
			secured.GET("/business-hours", businessHourHandler.List)
			secured.PUT("/business-hours/sync", perm("tenant.settings.manage"), businessHourHandler.Sync)
			secured.DELETE("/business-hours/:id", perm("tenant.settings.manage"), businessHourHandler.Delete)

			// ------------------------------
			// FINANCEIRO
			// ------------------------------
			fin := secured.Group("/financial")
			{
				fin.GET("/transactions", perm("financial.view"), transactionHandler.List)
				fin.GET("/transactions/:id", perm("financial.view"), transactionHandler.Get)
				fin.POST("/transactions", perm("financial.manage"), transactionHandler.Create)
				fin.PATCH("/transactions/:id/status", perm("financial.manage"), transactionHandler.UpdateStatus)
				fin.POST("/transactions/:id/payment-link", perm("financial.manage"), transactionHandler.PaymentLink)

				fin.GET("/commissions", perm("financial.view"), commissionHandler.List)
				fin.GET("/commissions/:id", perm("financial.view"), commissionHandler.Get)
				fin.POST("/commissions/:id/pay", perm("financial.manage"), commissionHandler.Pay)
				fin.POST("/commissions/:id/cancel", perm("financial.manage"), commissionHandler.Cancel)

				fin.GET("/commission-configs", perm("financial.manage"), commissionHandler.ListConfigs)
				fin.POST("/commission-configs", perm("financial.manage"), commissionHandler.SaveConfig)
				fin.DELETE("/commission-configs/:id", perm("financial.manage"), commissionHandler.DeleteConfig)

				fin.GET("/origins", perm("financial.view"), financialConfigHandler.ListOrigins)
				fin.POST("/origins", perm("financial.manage"), financialConfigHandler.CreateOrigin)
				fin.PATCH("/origins/:id", perm("financial.manage"), financialConfigHandler.UpdateOrigin)
				fin.DELETE("/origins/:id", perm("financial.manage"), financialConfigHandler.DeleteOrigin)

				fin.GET("/categories", perm("financial.view"), financialConfigHandler.ListCategories)
				fin.POST("/categories", perm("financial.manage"), financialConfigHandler.CreateCategory)
				fin.PATCH("/categories/:id", perm("financial.manage"), financialConfigHandler.UpdateCategory)
				fin.DELETE("/categories/:id", perm("financial.manage"), financialConfigHandler.DeleteCategory)

				fin.GET("/payment-methods", perm("financial.view"), financialConfigHandler.ListPaymentMethods)
				fin.POST("/payment-methods", perm("financial.manage"), financialConfigHandler.CreatePaymentMethod)
				fin.PATCH("/payment-methods/:id", perm("financial.manage"), financialConfigHandler.UpdatePaymentMethod)
				fin.DELETE("/payment-methods/:id", perm("financial.manage"), financialConfigHandler.DeletePaymentMethod)

				fin.GET("/reports/summary", perm("financial.view"), financialReportHandler.Summary)
				fin.GET("/reports/by-category", perm("financial.view"), financialReportHandler.ByCategory)
				fin.GET("/reports/pending-commissions", perm("financial.view"), financialReportHandler.PendingCommissions)
			}

			// ------------------------------
			// WHATSAPP
			// ------------------------------
			wpp := secured.Group("/whatsapp")
			{
				wpp.GET("/instances", perm("whatsapp.view"), whatsappHandler.List)
				wpp.POST("/instances", perm("whatsapp.manage"), whatsappHandler.Create)
				wpp.GET("/instances/:id/status", perm("whatsapp.view"), whatsappHandler.Status)
				wpp.POST("/instances/:id/connect", perm("whatsapp.manage"), whatsappHandler.Connect)
				wpp.POST("/instances/:id/messages", perm("whatsapp.manage"), whatsappHandler.SendMessage)
				wpp.DELETE("/instances/:id", perm("whatsapp.manage"), whatsappHandler.Destroy)
			}

			// ------------------------------
			// AUDITORIA
			// ------------------------------
			secured.GET("/audit-logs", perm("audit.view"), auditLogHandler.List)
		}
	}
}
