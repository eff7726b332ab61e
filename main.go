package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"Airflow/internal/auth"
	"Airflow/internal/calc/premium/autodesign"
	"Airflow/internal/calc/premium/batch"
	"Airflow/internal/calc/premium/importer"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/report"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/template"
	"Airflow/internal/config"
	"Airflow/internal/logging"
	"Airflow/internal/notify"
	"Airflow/internal/repo"
	"Airflow/internal/session"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type deps struct {
	cfg       config.Config
	logger    *slog.Logger
	users     repo.Repository
	catalog   *template.Catalog
	publisher notify.Publisher
}

func HandleList(mux *mux.Router, d deps) {
	authEnv := &auth.Authenv{
		JWTkey: d.cfg.TokenKey,
		Repo:   d.users,
		Logger: d.logger,
		Secure: d.cfg.TLS(),
	}
	limiter := auth.NewIPRateLimiter(d.cfg.RateLimit, d.cfg.RateBurst)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	templateH := &template.Handler{Catalog: d.catalog}
	secureApi.HandleFunc("/templates", templateH.List).Methods("GET")
	secureApi.HandleFunc("/templates/{name}", templateH.Get).Methods("GET")

	summaryH := &summary.Handler{}
	batchH := &batch.Handler{}
	recommendH := &recommend.Handler{}
	autoH := &autodesign.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{Logger: d.logger}

	secureApi.HandleFunc("/tools/airflow/calc", summaryH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/airflow/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/airflow/recommend", recommendH.Advise).Methods("POST")
	secureApi.HandleFunc("/tools/airflow/autobalance", autoH.Balance).Methods("POST")
	secureApi.HandleFunc("/tools/airflow/import", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	sessionH := &session.Handler{
		Store:     session.NewStore(),
		Catalog:   d.catalog,
		Publisher: d.publisher,
		Logger:    d.logger,
	}
	sessionH.Register(secureApi)
}

func loadCatalog(cfg config.Config) (*template.Catalog, error) {
	if cfg.TemplatesPath == "" {
		return template.Default()
	}
	return template.LoadFile(cfg.TemplatesPath)
}

func connectPublisher(ctx context.Context, cfg config.Config, logger *slog.Logger) (notify.Publisher, func()) {
	if cfg.MQTTBroker == "" {
		logger.Info("MQTT broker not configured, session summaries will not be published")
		return notify.Nop{}, func() {}
	}
	client := notify.NewClient(cfg, logger)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		logger.Warn("MQTT connect failed, continuing without publishing", "error", err)
		client.Disconnect()
		return notify.Nop{}, func() {}
	}
	return client, client.Disconnect
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg, "airflow")
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("template catalog error", "error", err, "path", cfg.TemplatesPath)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database error", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	users := repo.NewPostgresUserDB(db)
	if err := users.Migrate(ctx); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	publisher, closePublisher := connectPublisher(ctx, cfg, logger)
	defer closePublisher()

	mux := mux.NewRouter()
	HandleList(mux, deps{
		cfg:       cfg,
		logger:    logger,
		users:     users,
		catalog:   catalog,
		publisher: publisher,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "addr", cfg.HTTPAddr, "tls", cfg.TLS(), "templates", len(catalog.Names()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	wg.Wait()
	logger.Info("server stopped")
}
