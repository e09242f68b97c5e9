// server.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"mentora-hub/auth"
	"mentora-hub/config"
	"mentora-hub/controllers"
	"mentora-hub/logger"
	"mentora-hub/metrics"
	"mentora-hub/middleware"
	"mentora-hub/services"
	"mentora-hub/store"
	"mentora-hub/websocket"
	"mentora-hub/widget"
)

const sessionName = "mentora_session"

// App holds the wired dependencies of a running server.
type App struct {
	cfg       config.App
	store     store.Store
	hub       *websocket.Hub
	prom      *metrics.Prometheus
	webhook   *services.WebhookService
	users     *services.UserService
	dashboard *services.DashboardService
	closers   []func()
}

// newApp builds the store, identity provider, metrics and services from cfg.
func newApp(ctx context.Context, cfg config.App) (*App, error) {
	app := &App{cfg: cfg, prom: metrics.NewPrometheus()}

	recorder := metrics.Multi{app.prom}
	if cfg.CloudWatch {
		cw, err := metrics.NewCloudWatch(cfg.MetricsRegion, cfg.Env)
		if err != nil {
			logger.Warn.Printf("[newApp] CloudWatch metrics disabled: %v", err)
		} else {
			recorder = append(recorder, cw)
			app.closers = append(app.closers, cw.Close)
		}
	}

	provider, err := openProvider(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	catalogue, err := config.LoadCatalogue(cfg.EventsFile)
	if err != nil {
		app.Close()
		return nil, err
	}
	logger.Info.Printf("[newApp] loaded %d catalogue events from %s", len(catalogue.Events), cfg.EventsFile)

	app.hub = websocket.NewHub(recorder, cfg.ApplicationURL)
	app.store = store.NewNotifying(openStore(ctx, cfg), app.hub)

	app.users = services.NewUserService(app.store, provider)
	app.webhook = services.NewWebhookService(app.store, recorder)
	app.dashboard = services.NewDashboardService(app.store, services.NewEventCatalogue(catalogue), app.users, recorder, cfg.DashboardLimit)
	return app, nil
}

// Close flushes background metric writers.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		closeFn()
	}
	a.closers = nil
}

// openStore picks the document store. Missing or unusable Firestore
// credentials leave persistence disabled rather than stopping the server.
func openStore(ctx context.Context, cfg config.App) store.Store {
	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn.Println("[openStore] using in-memory store, data is lost on restart")
		return store.NewMemory()
	}

	creds, err := cfg.Credentials()
	if err != nil {
		logger.Error.Printf("[openStore] %v", err)
		return store.Disabled{Reason: "credentials could not be read"}
	}
	if len(creds) == 0 {
		logger.Warn.Println("[openStore] no Firestore credentials configured, persistence disabled")
		return store.Disabled{Reason: "no Firestore credentials configured"}
	}

	fs, err := store.NewFirestore(ctx, cfg.ProjectID, creds)
	if err != nil {
		logger.Error.Printf("[openStore] %v", err)
		return store.Disabled{Reason: "Firestore initialisation failed"}
	}
	return fs
}

func openProvider(ctx context.Context, cfg config.App) (auth.Provider, error) {
	if cfg.AuthBackend == config.BackendMemory {
		logger.Warn.Println("[openProvider] using in-memory accounts")
		return auth.NewMemory(), nil
	}
	fb, err := auth.NewFirebase(ctx, cfg.FirebaseAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to set up identity provider: %w", err)
	}
	return fb, nil
}

// projectDir resolves asset paths next to the source tree so tests and
// `go run` find templates regardless of the working directory.
func projectDir() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Dir(b)
}

// newRouter registers every route on a fresh engine.
func newRouter(a *App, templatesGlob, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))
	router.Use(middleware.SecurityHeaders())

	sessionStore := cookie.NewStore([]byte(a.cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   a.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionName, sessionStore))

	router.LoadHTMLGlob(templatesGlob)
	router.Static("/static", staticDir)

	pages := controllers.NewPageController(a.cfg.ApplicationURL)
	accounts := controllers.NewAuthController(a.users)
	webhook := controllers.NewWebhookController(a.webhook)
	admin := controllers.NewAdminController(a.dashboard, a.users)

	router.GET("/health", pages.Health)
	router.GET("/metrics", gin.WrapH(a.prom.Handler()))
	router.GET("/qrcode/:slug", pages.GetQRCode)

	// Agent webhook
	api := router.Group("/api", controllers.WebhookRecovery())
	{
		api.GET("", webhook.Status)
		api.POST("", webhook.Handle)
	}

	// Sign-in pages stay open to anonymous visitors
	public := router.Group("/", middleware.WithRole(a.users))
	{
		public.GET("/login", accounts.ShowLogin)
		public.GET("/signup", accounts.ShowSignup)
	}

	// Member pages: home and the support chats need a signed-in account
	members := router.Group("/", middleware.WithRole(a.users), middleware.AuthRequired)
	{
		members.GET("/", pages.Home)
		for _, page := range widget.Pages() {
			members.GET(page.Path(), pages.SupportPage(page.Slug))
		}
	}

	router.POST("/login", accounts.Login)
	router.POST("/signup", accounts.Signup)
	router.GET("/logout", accounts.Logout)

	// Admin area
	adminGroup := router.Group("/admin", middleware.AdminRequired(a.users))
	{
		adminGroup.GET("/dashboard", admin.DashboardPage)
		adminGroup.GET("/events/:eventName", admin.EventPage)
		adminGroup.GET("/stats", admin.Stats)
		adminGroup.GET("/export/reports.csv", admin.ExportReports)
		adminGroup.GET("/export/events/:eventName", admin.ExportEvent)
		adminGroup.GET("/live", a.hub.ServeLive)

		adminAPI := adminGroup.Group("/api")
		adminAPI.GET("/dashboard", admin.DashboardJSON)
		adminAPI.GET("/reports", admin.Reports)
		adminAPI.GET("/events/:eventName/registrations", admin.EventRegistrations)
		adminAPI.POST("/reports/:id/status", admin.SetReportStatus)
		adminAPI.DELETE("/reports/:id", admin.DeleteReport)
		adminAPI.DELETE("/registrations/:id", admin.DeleteRegistration)
		adminAPI.POST("/users/:uid/demote", admin.DemoteUser)
		adminAPI.POST("/password-reset", admin.PasswordReset)
	}

	router.NoRoute(middleware.WithRole(a.users), pages.NotFound)
	return router
}

// runServer serves until ctx is cancelled, then drains connections within
// the configured shutdown timeout.
func runServer(ctx context.Context, a *App) error {
	if a.cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	base := projectDir()
	router := newRouter(a, filepath.Join(base, "templates", "*.html"), filepath.Join(base, "static"))

	var handler http.Handler = router
	if a.cfg.Tracing {
		handler = xray.Handler(xray.NewFixedSegmentNamer("mentora-hub"), router)
		logger.Info.Println("[runServer] X-Ray tracing enabled")
	}

	srv := &http.Server{
		Addr:         ":" + a.cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info.Printf("[runServer] listening on :%s (%s)", a.cfg.HTTPPort, a.cfg.ApplicationURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info.Println("[runServer] shutting down")
	stopHub()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
