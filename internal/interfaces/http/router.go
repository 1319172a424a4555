package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/auth"
	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/cars"
	"github.com/dventura/autogest-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CarUC          *cars.CarUseCase
	ChangeStatus   *cars.ChangeStatusUseCase
	Documents      *billing.DocumentUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	IncidentUC     *usecase.IncidentUseCase
	LocationUC     *usecase.LocationUseCase
	NotificationUC *usecase.NotificationUseCase
	CompanyUC      *usecase.CompanyUseCase
	InvitationUC   *usecase.InvitationUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	Files          fileSaver
	JWTSecret      string
	WebhookSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Files)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de suscripciones (se autentica con secreto compartido, no con JWT)
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.WebhookSecret)
	api.Post("/subscription/webhook", subscriptionHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil
	profile := protected.Group("/profile")
	profile.Get("/", authHandler.Profile)
	profile.Put("/", authHandler.UpdateProfile)
	profile.Post("/avatar", authHandler.UploadAvatar)
	profile.Put("/password", authHandler.ChangePassword)
	profile.Delete("/", authHandler.DeleteAccount)

	// Coches
	carGroup := protected.Group("/cars")
	carHandler := NewCarHandler(deps.CarUC, deps.ChangeStatus, deps.Documents, deps.Files)
	carGroup.Post("/", carHandler.Create)
	carGroup.Get("/", carHandler.List)
	carGroup.Get("/:id", carHandler.GetByID)
	carGroup.Put("/:id", carHandler.Update)
	carGroup.Delete("/:id", carHandler.Delete)
	carGroup.Put("/:id/status", carHandler.ChangeStatus)
	carGroup.Post("/:id/notes", carHandler.AddNote)
	carGroup.Get("/:id/notes", carHandler.ListNotes)
	carGroup.Delete("/:id/notes/:noteId", carHandler.DeleteNote)
	carGroup.Post("/:id/documents", carHandler.UploadDocument)
	carGroup.Get("/:id/documents", carHandler.ListDocuments)
	carGroup.Delete("/:id/documents/:docId", carHandler.DeleteDocument)

	// Emisión de documentos (requiere suscripción activa)
	requireSub := RequireSubscription(deps.SubscriptionUC)
	carGroup.Post("/:id/invoice", requireSub, carHandler.GenerateInvoice)
	carGroup.Post("/:id/test-drive", requireSub, carHandler.GenerateTestDrive)

	// Gastos
	expenseGroup := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Files)
	expenseGroup.Post("/", expenseHandler.Create)
	expenseGroup.Get("/", expenseHandler.List)
	expenseGroup.Get("/:id", expenseHandler.GetByID)
	expenseGroup.Put("/:id", expenseHandler.Update)
	expenseGroup.Delete("/:id", expenseHandler.Delete)
	expenseGroup.Post("/:id/attachments", expenseHandler.UploadAttachment)

	// Incidencias
	incidentGroup := protected.Group("/incidents")
	incidentHandler := NewIncidentHandler(deps.IncidentUC)
	incidentGroup.Post("/", incidentHandler.Create)
	incidentGroup.Get("/", incidentHandler.List)
	incidentGroup.Put("/:id", incidentHandler.Update)
	incidentGroup.Put("/:id/resolve", incidentHandler.Resolve)
	incidentGroup.Delete("/:id", incidentHandler.Delete)

	// Ubicaciones
	locationGroup := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locationGroup.Post("/", locationHandler.Create)
	locationGroup.Get("/", locationHandler.List)
	locationGroup.Delete("/:id", locationHandler.Delete)

	// Notificaciones
	notifGroup := protected.Group("/notifications")
	notifHandler := NewNotificationHandler(deps.NotificationUC)
	notifGroup.Get("/", notifHandler.List)
	notifGroup.Put("/read-all", notifHandler.MarkAllRead)
	notifGroup.Put("/:id/read", notifHandler.MarkRead)
	notifGroup.Delete("/:id", notifHandler.Delete)

	// Equipos e invitaciones
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.InvitationUC)
	companyGroup := protected.Group("/company")
	companyGroup.Post("/", companyHandler.Create)
	companyGroup.Get("/", companyHandler.Get)
	companyGroup.Get("/members", companyHandler.Members)
	companyGroup.Put("/members/:id/permissions", companyHandler.UpdatePermissions)
	companyGroup.Delete("/members/:id", companyHandler.Expel)
	companyGroup.Post("/leave", companyHandler.Leave)
	companyGroup.Post("/invitations", companyHandler.Invite)
	companyGroup.Get("/invitations", companyHandler.ListInvitations)
	companyGroup.Delete("/invitations/:id", companyHandler.RevokeInvitation)
	protected.Post("/invitations/:token/accept", companyHandler.AcceptInvitation)

	// Suscripción
	subGroup := protected.Group("/subscription")
	subGroup.Get("/status", subscriptionHandler.Status)
	subGroup.Delete("/", subscriptionHandler.Cancel)
}
