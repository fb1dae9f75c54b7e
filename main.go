package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Estimator/internal/auth"
	"Estimator/internal/calc"
	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/hydrogen"
	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/premium/batch"
	"Estimator/internal/calc/premium/importer"
	"Estimator/internal/calc/quadcopter"
	"Estimator/internal/calc/report"
	"Estimator/internal/calc/solar"
	"Estimator/internal/calc/tools"
	"Estimator/internal/config"
	"Estimator/internal/logger"
	"Estimator/internal/repo"
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

// accessLog logs every request with its duration.
func accessLog(next http.Handler) http.Handler {
	log := logger.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugw("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "took", time.Since(start))
	})
}

// HandleList registers the API. db may be nil, in which case the configured
// operator signs in and the catalog is read from catalog.path.
func HandleList(mux *mux.Router, cfg *config.Config, db *sql.DB) {
	var users repo.Repository = repo.StaticUsers{Login: cfg.Auth.OperatorLogin, PasswordHash: cfg.Auth.OperatorPasswordHash}
	var catalog microgreens.Catalog = microgreens.FileCatalog{Path: cfg.Catalog.Path}
	var store importer.Store
	if db != nil {
		users = repo.NewPostgresUserDB(db)
		catalogRepo := repo.NewPostgresCatalogDB(db)
		catalog, store = catalogRepo, catalogRepo
	}

	authEnv := &auth.Authenv{JWTkey: []byte(cfg.Auth.TokenKey), Repo: users}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst)

	mux.Use(accessLog)
	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	atmosphereH := &atmosphere.Handler{}
	hydrogenH := &hydrogen.Handler{}
	quadcopterH := &quadcopter.Handler{}
	solarH := &solar.Handler{}
	microgreensH := tools.Microgreens(cfg.Microgreens, catalog)
	batchH := &batch.Handler{}
	reportH := &report.Handler{Sources: tools.Sources(microgreensH)}
	importerH := &importer.Handler{Store: store}

	api.HandleFunc("/tools/atmosphere/calc", atmosphereH.Calc).Methods("POST")
	api.HandleFunc("/tools/hydrogen/calc", hydrogenH.Calc).Methods("POST")
	api.HandleFunc("/tools/hydrogen/compress", hydrogenH.Compress).Methods("POST")
	api.HandleFunc("/tools/quadcopter/calc", quadcopterH.Calc).Methods("POST")
	api.HandleFunc("/tools/solar/calc", solarH.Calc).Methods("POST")
	api.HandleFunc("/tools/container/calc", microgreensH.Container).Methods("POST")
	api.HandleFunc("/tools/microgreens/calc", microgreensH.Calc).Methods("POST")
	api.HandleFunc("/tools/harvest/calc", microgreensH.Harvest).Methods("POST")
	api.HandleFunc("/tools/batch/quadcopter", batchH.Quadcopter).Methods("POST")
	api.HandleFunc("/tools/batch/harvest", batchH.Harvest).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/tools/report/text", reportH.Text).Methods("POST")
	api.HandleFunc("/tools", func(w http.ResponseWriter, r *http.Request) {
		calc.WriteJSON(w, reportH.Tools())
	}).Methods("GET")
	api.HandleFunc("/catalog", microgreensH.List).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/me", authEnv.MeHandler).Methods("GET")
	secureApi.HandleFunc("/operators", authEnv.RegisterHandler).Methods("POST")
	secureApi.HandleFunc("/catalog/import", importerH.Catalog).Methods("POST")
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	var db *sql.DB
	if cfg.Database.URL != "" {
		var err error
		if db, err = auth.InitDB(cfg.Database.URL); err != nil {
			return err
		}
		defer db.Close()
		if err := repo.Migrate(ctx, db); err != nil {
			return err
		}
	} else {
		logger.Logger.Infow("no database configured, using file catalog", "path", cfg.Catalog.Path)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Logger.Infow("starting server", "addr", cfg.Server.Addr, "tls", cfg.Server.TLS())
		var err error
		if cfg.Server.TLS() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Errorw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "stopping server")
	}
	wg.Wait()
	logger.Logger.Info("server stopped")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Console logging until the configured logger is up.
	_ = logger.Initialize(false, "info")

	cfg, err := config.Load(os.Getenv("ESTIMATOR_CONFIG"))
	if err != nil {
		logger.Logger.Fatalw("loading config", "error", err)
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		logger.Logger.Fatalw("initializing logger", "error", err)
	}
	defer logger.Sync()

	if err := run(ctx, cfg); err != nil {
		logger.Logger.Fatalw("server failed", "error", err, "hints", errors.FlattenHints(err))
	}
}
