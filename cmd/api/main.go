package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/cache"
	"github.com/soniabinty/gizmorent-server/internal/handlers"
	"github.com/soniabinty/gizmorent-server/internal/mailer"
	"github.com/soniabinty/gizmorent-server/internal/notify"
	"github.com/soniabinty/gizmorent-server/internal/payments"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/internal/service"
	"github.com/soniabinty/gizmorent-server/pkg/config"
	"github.com/soniabinty/gizmorent-server/pkg/database"
	"github.com/soniabinty/gizmorent-server/pkg/events"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
	mw "github.com/soniabinty/gizmorent-server/pkg/middleware"
)

func main() {
	cfg := config.Load()

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	client, err := database.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.Mongo.Database)

	// Unique indexes back the duplicate guards; fail fast if they
	// cannot be built.
	ctx, cancel = context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	err = repository.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		logger.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Connect to Redis (idempotency replay store)
	idempotencyStore, err := cache.NewStore(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer idempotencyStore.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Initialize repositories
	gadgetRepo := repository.NewGadgetRepository(db)
	userRepo := repository.NewUserRepository(db)
	renterRepo := repository.NewRenterRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Initialize payment clients
	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
	sslcommerzClient := payments.NewSSLCommerzClient(cfg.SSLCommerz)

	// Initialize services
	catalogService := service.NewCatalogService(gadgetRepo)
	authService := service.NewAuthService(userRepo, cfg)
	renterService := service.NewRenterService(renterRepo, userRepo, eventBus)
	commerceService := service.NewCommerceService(wishlistRepo, cartRepo)
	orderService := service.NewOrderService(orderRepo, eventBus)
	paymentService := service.NewPaymentService(paymentRepo, stripeClient, sslcommerzClient, eventBus)
	reviewService := service.NewReviewService(reviewRepo)
	notificationService := service.NewNotificationService(notifRepo, userRepo)

	// Start the notification projector
	projector := notify.NewProjector(eventBus, notifRepo, newMailer(cfg))
	if err := projector.Start(); err != nil {
		logger.Error("Failed to start notification projector", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	h := handlers.New(
		catalogService,
		authService,
		renterService,
		commerceService,
		orderService,
		paymentService,
		reviewService,
		notificationService,
		cfg.Auth.JWTSecret,
	)

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("gizmorent"))
	r.Use(mw.Logging)
	r.Use(mw.CORS(cfg.CORS.AllowedOrigin))
	r.Use(mw.Health)

	idempotent := mw.Idempotency(idempotencyStore)

	// Catalog
	r.Get("/gadgets/search", h.SearchGadgets)
	r.Get("/gadgets", h.ListGadgets)
	r.Get("/gadgets/{id}", h.GetGadget)
	r.Get("/gadget/{serialCode}", h.GetGadgetBySerialCode)
	r.With(h.RequireJWT("renter")).Post("/gadgets", h.CreateGadget)
	r.With(h.RequireJWT("renter")).Put("/gadgets/{id}", h.UpdateGadget)
	r.With(h.RequireJWT("renter")).Delete("/gadgets/{id}", h.DeleteGadget)

	// Identity
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/google-login", h.SocialLogin)
	r.Post("/auth/google", h.SocialLogin)
	r.With(h.RequireJWT("admin")).Get("/users", h.ListUsers)
	r.Get("/users/admin/{email}", h.CheckAdmin)
	r.Get("/users/renter/{email}", h.CheckRenter)
	r.Get("/users/{email}", h.GetUser)
	r.With(h.RequireJWT("")).Patch("/users/{email}", h.UpdateUser)

	// Renter onboarding
	r.With(idempotent).Post("/renter_request", h.SubmitRenterRequest)
	r.With(h.RequireJWT("admin")).Get("/renter_request", h.ListRenterRequests)
	r.With(h.RequireJWT("admin")).Get("/renter_records", h.ListRenterRecords)
	r.With(h.RequireJWT("admin")).Patch("/approve_renter/{email}", h.ApproveRenter)
	r.With(h.RequireJWT("admin")).Delete("/reject_renter/{email}", h.RejectRenter)

	// Reviews
	r.Post("/product-review", h.AddProductReview)
	r.Get("/product-review/{productId}", h.ListProductReviews)
	r.Post("/renter-review", h.AddRenterReview)
	r.Get("/renter-review/{ownerEmail}", h.ListRenterReviews)

	// Wishlist and cart
	r.Post("/wishlisted", h.AddToWishlist)
	r.Get("/wishlisted", h.ListWishlist)
	r.Delete("/wishlisted/{id}", h.RemoveFromWishlist)
	r.Post("/cartlist", h.AddToCart)
	r.Get("/cartlist", h.ListCart)
	r.Patch("/cartlist/{id}", h.UpdateCartQuantity)
	r.Delete("/cartlist/{id}", h.RemoveFromCart)
	r.Delete("/cartlist", h.ClearCart)

	// Orders
	r.Post("/orders", h.PlaceOrders)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
	r.With(h.RequireJWT("renter")).Patch("/orders/{id}", h.UpdateOrderStatus)

	// Payments
	r.With(idempotent).Post("/create-payment-intent", h.CreatePaymentIntent)
	r.With(idempotent).Post("/payments", h.RecordPayment)
	r.Get("/payments", h.ListPayments)
	r.With(idempotent).Post("/sslcommerz-payment", h.InitSSLCommerzPayment)
	r.Post("/payment-success/{tranId}", h.ConfirmSSLCommerzPayment)

	// Notifications
	r.Get("/notifications", h.ListNotifications)
	r.Post("/notifications", h.CreateNotification)
	r.Patch("/notifications/{id}/read", h.MarkNotificationRead)
	r.Patch("/notifications/read-all", h.MarkAllNotificationsRead)
	r.Delete("/notifications/{id}", h.DeleteNotification)
	r.Delete("/notifications", h.DeleteNotificationsByTarget)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down gizmorent server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting gizmorent server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func newMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.SMTPFrom)
	}
	return mailer.NewSMTP(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom)
}
