package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/globalyuen/achievepack-sub004/internal/config"
	"github.com/globalyuen/achievepack-sub004/internal/handlers"
	"github.com/globalyuen/achievepack-sub004/internal/mailer"
	"github.com/globalyuen/achievepack-sub004/internal/outbox"
	"github.com/globalyuen/achievepack-sub004/internal/pinstore"
	"github.com/globalyuen/achievepack-sub004/internal/store"
	"github.com/globalyuen/achievepack-sub004/internal/workflow"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Local data dirs (pins, artwork uploads)
	uploadDir := filepath.Join(cfg.DataDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "dir", uploadDir, "error", err)
		os.Exit(1)
	}
	pinKV, err := pinstore.NewFileKV(filepath.Join(cfg.DataDir, "pins"))
	if err != nil {
		slog.Error("Failed to create pin store", "error", err)
		os.Exit(1)
	}
	pins := pinstore.New(pinKV)

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Mail + outbox pipeline
	mailClient := mailer.NewClient(mailer.ClientConfig{
		BaseURL:      cfg.BrevoBaseURL,
		APIKey:       cfg.BrevoAPIKey,
		SenderEmail:  cfg.SenderEmail,
		SenderName:   cfg.SenderName,
		ReplyToEmail: cfg.ReplyToEmail,
		ReplyToName:  cfg.ReplyToName,
	}, logger)
	dispatcher := mailer.NewDispatcher(mailClient, logger)

	outboxStore := outbox.NewStore(db.DB)
	processor := outbox.NewProcessor(outboxStore, &outbox.EmailSender{Client: mailClient}, cfg.OutboxInterval, logger)

	controller := workflow.NewController(db, outboxStore, logger)

	// 6. Setup Handlers
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		Pins:         pins,
		Workflow:     controller,
		UploadDir:    uploadDir,
	}
	campaignHandler := &handlers.CampaignHandler{
		Store:         db,
		SessionStore:  sessionStore,
		Templates:     templates,
		Dispatcher:    dispatcher,
		Client:        mailClient,
		Logger:        logger,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	automationHandler := &handlers.AutomationHandler{Store: db, Logger: logger}
	unsubscribeHandler := &handlers.UnsubscribeHandler{Store: db, Logger: logger}

	mux := http.NewServeMux()

	// Static Files. Uploaded artwork lives under the data dir, everything
	// else ships with the binary's working tree.
	mux.Handle("/static/uploads/", http.StripPrefix("/static/uploads", http.FileServer(http.Dir(uploadDir))))
	mux.Handle("/static/", http.StripPrefix("/static", http.FileServer(http.Dir("./static"))))

	// Rate Limiter for the unauthenticated endpoints
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)
	mux.HandleFunc("GET /unsubscribe", rateLimiter.Middleware(unsubscribeHandler.Unsubscribe))

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))

	mux.HandleFunc("/admin/quotes", adminHandler.AuthMiddleware(adminHandler.ListQuotes))
	mux.HandleFunc("POST /admin/quotes/status", adminHandler.AuthMiddleware(adminHandler.UpdateQuoteStatus))
	mux.HandleFunc("POST /admin/quotes/quick-status", adminHandler.AuthMiddleware(adminHandler.UpdateQuoteQuickStatus))
	mux.HandleFunc("POST /admin/quotes/reply", adminHandler.AuthMiddleware(adminHandler.ReplyToQuote))

	mux.HandleFunc("/admin/artworks", adminHandler.AuthMiddleware(adminHandler.ListArtworks))
	mux.HandleFunc("POST /admin/artworks", adminHandler.AuthMiddleware(adminHandler.UploadArtwork))
	mux.HandleFunc("POST /admin/artworks/status", adminHandler.AuthMiddleware(adminHandler.UpdateArtworkStatus))
	mux.HandleFunc("POST /admin/artworks/feedback", adminHandler.AuthMiddleware(adminHandler.SaveArtworkFeedback))
	mux.HandleFunc("POST /admin/artworks/proof", adminHandler.AuthMiddleware(adminHandler.SaveArtworkProof))
	mux.HandleFunc("POST /admin/artworks/codes", adminHandler.AuthMiddleware(adminHandler.SaveArtworkCodes))

	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("POST /admin/orders/status", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))

	mux.HandleFunc("/admin/bin", adminHandler.AuthMiddleware(adminHandler.ListBin))
	mux.HandleFunc("POST /admin/delete", adminHandler.AuthMiddleware(adminHandler.DeleteItem))
	mux.HandleFunc("POST /admin/bin/restore", adminHandler.AuthMiddleware(adminHandler.RestoreItem))
	mux.HandleFunc("POST /admin/bin/purge", adminHandler.AuthMiddleware(adminHandler.PurgeItem))

	mux.HandleFunc("/admin/campaigns", adminHandler.AuthMiddleware(campaignHandler.ListCampaigns))
	mux.HandleFunc("POST /admin/campaigns/save", adminHandler.AuthMiddleware(campaignHandler.SaveDraft))
	mux.HandleFunc("POST /admin/campaigns/delete", adminHandler.AuthMiddleware(campaignHandler.DeleteDraft))
	mux.HandleFunc("GET /admin/campaigns/recipients", adminHandler.AuthMiddleware(campaignHandler.PreviewRecipients))
	mux.HandleFunc("POST /admin/campaigns/send", adminHandler.AuthMiddleware(campaignHandler.SendCampaign))
	mux.HandleFunc("POST /admin/campaigns/test", adminHandler.AuthMiddleware(campaignHandler.SendTest))

	// JSON APIs
	mux.HandleFunc("POST /api/pins/{ns}/{id}", adminHandler.AuthMiddleware(adminHandler.PinItem))
	mux.HandleFunc("DELETE /api/pins/{ns}/{id}", adminHandler.AuthMiddleware(adminHandler.UnpinItem))
	mux.HandleFunc("OPTIONS /api/automation", automationHandler.Options)
	mux.HandleFunc("GET /api/automation", automationHandler.Get)
	mux.HandleFunc("POST /api/automation", automationHandler.Post)

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		// Fix for "Forbidden - origin invalid": Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// The automation API is called cross-origin by schedulers and carries no
	// session, so it is exempt from the CSRF check.
	withCSRF := CSRF(mux)
	csrfExempt := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/automation") {
			r = csrf.UnsafeSkipCheck(r)
		}
		withCSRF.ServeHTTP(w, r)
	})

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			csrfExempt,
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Outbox processor runs for the life of the server.
	outboxCtx, stopOutbox := context.WithCancel(context.Background())
	go processor.Run(outboxCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")
	stopOutbox()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
