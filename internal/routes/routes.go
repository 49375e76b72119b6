package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/config"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
	ucAdmin "github.com/BruksfildServices01/marketplace-api/internal/usecase/admin"
	ucAuth "github.com/BruksfildServices01/marketplace-api/internal/usecase/auth"
	ucBooking "github.com/BruksfildServices01/marketplace-api/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/marketplace-api/internal/usecase/catalog"
	ucNotification "github.com/BruksfildServices01/marketplace-api/internal/usecase/notification"
	ucPayment "github.com/BruksfildServices01/marketplace-api/internal/usecase/payment"
	ucProvider "github.com/BruksfildServices01/marketplace-api/internal/usecase/provider"
	ucReview "github.com/BruksfildServices01/marketplace-api/internal/usecase/review"
	ucUsers "github.com/BruksfildServices01/marketplace-api/internal/usecase/users"
)

// Deps are the process-wide singletons the router wires into use cases.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Issuer      *token.Issuer
	Revoked     revocation.Store
	Mail        mailer.Sender
	Storage     storage.Store
	Files       *storage.LocalStore
	Audit       audit.Sink
	AuditLogger *audit.Logger
	EmailCheck  func(string) bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	providerRepo := infraRepo.NewProviderGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)

	notifier := notify.New(notificationRepo, d.Log)

	// ======================================================
	// USE CASES
	// ======================================================
	authUC := handlers.AuthUseCases{
		Register:       ucAuth.NewRegister(userRepo, d.Mail, d.Config.FrontendURL, d.EmailCheck),
		Login:          ucAuth.NewLogin(userRepo, d.Issuer),
		Refresh:        ucAuth.NewRefresh(userRepo, d.Issuer, d.Revoked),
		Logout:         ucAuth.NewLogout(d.Issuer, d.Revoked),
		VerifyEmail:    ucAuth.NewVerifyEmail(userRepo),
		ChangePassword: ucAuth.NewChangePassword(userRepo, d.Revoked, d.Audit),
		ResetRequest: ucAuth.NewRequestPasswordReset(
			userRepo,
			d.Mail,
			d.Config.FrontendURL,
			d.Config.PasswordResetTTL,
		),
		ResetConfirm: ucAuth.NewConfirmPasswordReset(userRepo, d.Audit),
	}

	providerUC := handlers.ProviderUseCases{
		RequestRole: ucProvider.NewRequestRole(providerRepo, d.Audit),
		Review:      ucProvider.NewReviewVerification(providerRepo, notifier, d.Audit),
		Update:      ucProvider.NewUpdateProfile(providerRepo),
		Upload:      ucProvider.NewUploadDocument(providerRepo, d.Storage, d.Audit),
		Queries:     ucProvider.NewQueries(providerRepo),
		Offered:     ucProvider.NewOfferedServices(providerRepo, catalogRepo),
	}

	bookingUC := handlers.BookingUseCases{
		Create: ucBooking.NewCreate(
			bookingRepo,
			userRepo,
			catalogRepo,
			providerRepo,
			notifier,
			d.Audit,
		),
		Queries: ucBooking.NewQueries(bookingRepo, providerRepo),
		Update:  ucBooking.NewUpdate(bookingRepo, providerRepo, notifier, d.Audit),
		Cancel:  ucBooking.NewCancel(bookingRepo, providerRepo, notifier, d.Audit),
		Delete:  ucBooking.NewDelete(bookingRepo, d.Audit),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authUC)
	userHandler := handlers.NewUserHandler(ucUsers.New(userRepo, d.Audit))
	providerHandler := handlers.NewProviderHandler(providerUC)
	catalogHandler := handlers.NewCatalogHandler(ucCatalog.NewManager(catalogRepo))
	bookingHandler := handlers.NewBookingHandler(bookingUC)
	paymentHandler := handlers.NewPaymentHandler(
		ucPayment.New(bookingRepo, providerRepo, notifier, d.Audit),
	)
	reviewHandler := handlers.NewReviewHandler(
		ucReview.New(bookingRepo, providerRepo, notifier, d.Audit),
	)
	notificationHandler := handlers.NewNotificationHandler(ucNotification.NewInbox(notificationRepo))
	adminHandler := handlers.NewAdminHandler(ucAdmin.NewStats(statsRepo))
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger)

	authRequired := middleware.AuthMiddleware(d.Issuer, d.Revoked)
	authOptional := middleware.OptionalAuth(d.Issuer, d.Revoked)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	// ------------------------------
	// AUTH
	// ------------------------------
	auth := r.Group("/auth/v1")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authRequired, authHandler.Logout)
		auth.GET("/verify-email", authHandler.VerifyEmail)
		auth.POST("/password-reset/request", authHandler.RequestPasswordReset)
		auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	}

	// ------------------------------
	// PUBLIC (token optional)
	// ------------------------------
	public := r.Group("/")
	public.Use(authOptional)
	{
		public.GET("/providers", providerHandler.List)
		public.GET("/providers/:id", providerHandler.Get)

		public.GET("/categories", catalogHandler.ListCategories)
		public.GET("/categories/:id", catalogHandler.GetCategory)
		public.GET("/services", catalogHandler.ListServices)
		public.GET("/services/:id", catalogHandler.GetService)

		public.GET("/reviews", reviewHandler.List)
		public.GET("/reviews/:id", reviewHandler.Get)
	}

	// ------------------------------
	// AUTHENTICATED
	// ------------------------------
	secured := r.Group("/")
	secured.Use(authRequired)
	{
		secured.GET("/me", userHandler.Me)
		secured.POST("/user/change-password", authHandler.ChangePassword)
		secured.POST("/user/request-role",
			middleware.RequireRole(identity.RoleCustomer),
			providerHandler.RequestRole,
		)

		secured.GET("/users/:id", userHandler.Get)
		secured.PUT("/users/:id", userHandler.Update)

		// bookings
		secured.POST("/bookings", bookingHandler.Create)
		secured.GET("/bookings", bookingHandler.List)
		secured.GET("/bookings/:id", bookingHandler.Get)
		secured.PUT("/bookings/:id", bookingHandler.Update)
		secured.DELETE("/bookings/:id", bookingHandler.Delete)
		secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		secured.GET("/bookings/:id/payment", bookingHandler.Payment)

		// payments
		secured.POST("/payments", paymentHandler.Create)
		secured.GET("/payments/:id", paymentHandler.Get)

		// reviews
		secured.POST("/reviews", reviewHandler.Create)
		secured.PUT("/reviews/:id/reply",
			middleware.RequireRole(identity.RoleProvider),
			reviewHandler.Reply,
		)

		// notifications
		secured.GET("/notifications", notificationHandler.List)
		secured.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		secured.DELETE("/notifications/:id", notificationHandler.Delete)
	}

	// uploads are only served from disk; S3 objects are never proxied
	if d.Files != nil {
		documents := handlers.NewDocumentHandler(ucProvider.NewDocuments(providerRepo), d.Files)
		r.GET("/uploads/*filepath", authRequired, documents.Get)
	}

	// ------------------------------
	// PROVIDER
	// ------------------------------
	provider := r.Group("/provider")
	provider.Use(authRequired, middleware.RequireRole(identity.RoleProvider))
	{
		provider.GET("/profile", providerHandler.GetProfile)
		provider.PUT("/profile", providerHandler.UpdateProfile)
		provider.POST("/profile/document", providerHandler.UploadDocument)
		provider.POST("/services", providerHandler.AddService)
		provider.DELETE("/services/:service_id", providerHandler.RemoveService)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	staff := r.Group("/")
	staff.Use(authRequired, adminOnly)
	{
		staff.GET("/all_users", userHandler.List)
		staff.DELETE("/users/:id", userHandler.Delete)
		staff.POST("/users/:id/approve-role", providerHandler.ApproveRole)

		staff.POST("/categories", catalogHandler.CreateCategory)
		staff.PUT("/categories/:id", catalogHandler.UpdateCategory)
		staff.DELETE("/categories/:id", catalogHandler.DeleteCategory)

		staff.POST("/services", catalogHandler.CreateService)
		staff.PUT("/services/:id", catalogHandler.UpdateService)
		staff.DELETE("/services/:id", catalogHandler.DeleteService)
		staff.POST("/services/:id/add-ons", catalogHandler.CreateAddOn)
		staff.PUT("/services/:id/availability", catalogHandler.SetAvailability)
		staff.POST("/services/:id/area-pricing", catalogHandler.AddAreaRule)
		staff.PUT("/add-ons/:id", catalogHandler.UpdateAddOn)
		staff.DELETE("/add-ons/:id", catalogHandler.DeleteAddOn)

		staff.GET("/payments", paymentHandler.List)
		staff.PUT("/payments/:id", paymentHandler.Update)
		staff.PUT("/reviews/:id/moderate", reviewHandler.Moderate)
	}

	admin := r.Group("/admin/v1")
	admin.Use(authRequired, adminOnly)
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
