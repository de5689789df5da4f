package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/chatbot"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	ucContact "github.com/BruksfildServices01/salon-booking/internal/usecase/contact"
	ucPayment "github.com/BruksfildServices01/salon-booking/internal/usecase/payment"
	ucProfile "github.com/BruksfildServices01/salon-booking/internal/usecase/profile"
	ucReview "github.com/BruksfildServices01/salon-booking/internal/usecase/review"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Clock  timezone.Clock

	Locker lock.Locker
	Redis  *redis.Client // nil when locks are in-process

	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Notify      *notify.Dispatcher

	Uploader  storage.Uploader  // nil when S3 is not configured
	Generator chatbot.Generator // nil when Gemini is not configured
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log

	validators.Register()

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	chatRepo := infraRepo.NewChatGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)

	// ======================================================
	// USE CASES / BOOKINGS
	// ======================================================
	slots := ucBooking.NewSlots(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo, slots, d.Locker, cfg.BookingLockTTL, d.Clock, d.Audit, d.Notify, log,
	)
	updateBookingUC := ucBooking.NewUpdateBooking(
		bookingRepo, slots, d.Locker, cfg.BookingLockTTL, d.Clock, d.Audit, log,
	)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Clock, d.Audit, d.Notify, log)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, d.Clock, d.Audit, d.Notify, log)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, d.Clock, d.Audit, log)

	// ======================================================
	// USE CASES / PAYMENTS
	// ======================================================
	gateway := ucPayment.NewGateway(
		paymentRepo,
		ucPayment.Config{
			TmnCode:    cfg.VNPay.TmnCode,
			HashSecret: cfg.VNPay.HashSecret,
			PayURL:     cfg.VNPay.URL,
			ReturnURL:  cfg.VNPay.ReturnURL,
		},
		d.Locker,
		cfg.BookingLockTTL,
		d.Clock,
		d.Audit,
		d.Notify,
		log,
	)

	// ======================================================
	// CONTACT EMAIL CHECK
	// ======================================================
	var domainCheck func(string) bool
	if cfg.ValidateEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		cancelBookingUC,
		confirmBookingUC,
		completeBookingUC,
		ucBooking.NewGetBooking(bookingRepo),
		ucBooking.NewListMyBookings(bookingRepo),
		slots,
		log,
	)
	paymentHandler := handlers.NewPaymentHandler(gateway, log)
	reviewHandler := handlers.NewReviewHandler(
		ucReview.NewCreateReview(reviewRepo, d.Audit, log),
		ucReview.NewListServiceReviews(reviewRepo),
		log,
	)
	chatbotHandler := handlers.NewChatbotHandler(chatbot.NewService(chatRepo, d.Generator, log), log)
	contactHandler := handlers.NewContactHandler(ucContact.NewSubmitContact(accountRepo, d.Notify, log), domainCheck, log)
	profileHandler := handlers.NewProfileHandler(ucProfile.NewService(accountRepo, d.Uploader, d.Audit, log), log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger, log)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Redis)

	// ======================================================
	// API (JSON)
	// ======================================================
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandler.Check)

		optional := middleware.OptionalAuth(cfg.JWTSecret)
		required := middleware.RequireAuth(cfg.JWTSecret)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		bookings := api.Group("/bookings")
		{
			bookings.GET("/slots", bookingHandler.Slots)
			bookings.POST("", optional, bookingHandler.Create)
			bookings.GET("", required, bookingHandler.List)
			bookings.GET("/:id", required, bookingHandler.Get)
			bookings.PATCH("/:id", required, bookingHandler.Update)
			bookings.POST("/:id/cancel", required, bookingHandler.Cancel)
			bookings.POST("/:id/confirm", required, bookingHandler.Confirm)
			bookings.POST("/:id/complete", required, bookingHandler.Complete)
		}

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		vnpay := api.Group("/payments/vnpay")
		{
			vnpay.POST("/create", optional, paymentHandler.Create)
			vnpay.GET("/return", paymentHandler.Return)
			vnpay.GET("/ipn", paymentHandler.IPN)
			vnpay.POST("/ipn", paymentHandler.IPN)
			vnpay.POST("/refund", required, paymentHandler.Refund)
			vnpay.GET("/query/:transaction_id", required, paymentHandler.Query)
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		api.POST("/reviews", required, reviewHandler.Create)
		api.GET("/services/:id/reviews", reviewHandler.ListByService)

		// ------------------------------
		// CHATBOT
		// ------------------------------
		api.POST("/chatbot/messages", optional, chatbotHandler.Send)
		api.GET("/chatbot/sessions/:id/messages", optional, chatbotHandler.Messages)

		// ------------------------------
		// CONTACT / PROFILE
		// ------------------------------
		api.POST("/contact", contactHandler.Submit)

		profile := api.Group("/profile", required)
		{
			profile.GET("", profileHandler.Get)
			profile.PATCH("", profileHandler.Update)
			profile.PUT("/password", profileHandler.ChangePassword)
			profile.POST("/avatar", profileHandler.UploadAvatar)
		}

		api.GET("/audit-logs", required, auditLogsHandler.List)
	}
}
