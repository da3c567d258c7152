package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"freightflow/config"
	"freightflow/db"
	"freightflow/db/mongo"
	"freightflow/db/postgres"
	"freightflow/handlers"
	"freightflow/repository"
	"freightflow/routes"
	"freightflow/service"
	"freightflow/storage"
	"freightflow/utils"
)

type repos struct {
	clients   repository.ClientRepository
	suppliers repository.SupplierRepository
	vehicles  repository.VehicleRepository
	trips     repository.TripRepository
	profiles  repository.ProfileRepository
}

func main() {
	// Load config from .env or environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	var r repos
	var conn db.DB

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL, postgres.Pool{
			MaxOpenConns:    cfg.PostgresPool.MaxOpenConns,
			MaxIdleConns:    cfg.PostgresPool.MaxIdleConns,
			ConnMaxLifetime: cfg.PostgresPool.ConnMaxLifetime,
		})
		if err := pg.Connect(); err != nil {
			log.Fatalf("postgres: %v", err)
		}
		conn = pg

		// Run migrations (for Postgres)
		if err := db.RunMigrations(pg.Conn, cfg.MigrationsPath); err != nil {
			log.Fatalf("migrations: %v", err)
		}

		r = repos{
			clients:   repository.NewPostgresClientRepo(pg.Conn),
			suppliers: repository.NewPostgresSupplierRepo(pg.Conn),
			vehicles:  repository.NewPostgresVehicleRepo(pg.Conn),
			trips:     repository.NewPostgresTripRepo(pg.Conn),
			profiles:  repository.NewPostgresProfileRepo(pg.Conn),
		}

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(); err != nil {
			log.Fatalf("mongo: %v", err)
		}
		conn = mg

		tripRepo := repository.NewMongoTripRepo(mg.Database)
		vehicleRepo := repository.NewMongoVehicleRepo(mg.Database)
		if err := tripRepo.EnsureIndexes(mg.GetContext()); err != nil {
			log.Fatalf("mongo trip indexes: %v", err)
		}
		if err := vehicleRepo.EnsureIndexes(mg.GetContext()); err != nil {
			log.Fatalf("mongo vehicle indexes: %v", err)
		}

		r = repos{
			clients:   repository.NewMongoClientRepo(mg.Database),
			suppliers: repository.NewMongoSupplierRepo(mg.Database),
			vehicles:  vehicleRepo,
			trips:     tripRepo,
			profiles:  repository.NewMongoProfileRepo(mg.Database),
		}

	default:
		log.Println("DB_TYPE=memory: data is lost on restart")
		r = repos{
			clients:   repository.NewMemoryClientRepo(),
			suppliers: repository.NewMemorySupplierRepo(),
			vehicles:  repository.NewMemoryVehicleRepo(),
			trips:     repository.NewMemoryTripRepo(),
			profiles:  repository.NewMemoryProfileRepo(),
		}
	}
	if conn != nil {
		defer conn.Disconnect()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var renderer service.LRRenderer = utils.FPDF{}
	if cfg.PDFEngine == "chrome" {
		renderer = &utils.ChromePDF{}
	}

	// Services
	booking := service.NewBookingService(r.clients, r.suppliers, r.vehicles, r.trips, catalog)
	trips := service.NewTripService(r.trips, r.profiles, store, renderer)
	reference := service.NewReferenceService(r.clients, r.suppliers, r.vehicles, r.profiles, catalog)
	reference.InsuranceWarningDays = cfg.InsuranceWarningDays

	// Handlers
	router := routes.NewRouter(routes.Handlers{
		System: &handlers.SystemHandler{Catalog: catalog},
		Booking: &handlers.BookingHandler{
			Service:        booking,
			Policy:         cfg.OverridePolicy,
			DefaultAdvance: cfg.DefaultAdvancePercent,
		},
		Trip:      &handlers.TripHandler{Service: trips},
		Reference: &handlers.ReferenceHandler{Service: reference},
		Profile:   &handlers.ProfileHandler{Service: reference},
	}, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s (db=%s storage=%s pdf=%s)", cfg.Port, cfg.DBType, cfg.StorageType, cfg.PDFEngine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageType == "r2" {
		return storage.NewR2Store(ctx, storage.R2Options{
			Bucket:          cfg.R2.Bucket,
			AccountID:       cfg.R2.AccountID,
			PublicURL:       cfg.R2.PublicURL,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
		})
	}
	return storage.NewLocalStore(cfg.StorageDir)
}
