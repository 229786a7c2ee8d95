package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"logistics-route-service/internal/adapters/repositories"
	"logistics-route-service/internal/api"
	"logistics-route-service/internal/config"
	"logistics-route-service/internal/jobs"
	"logistics-route-service/internal/platform/db"
	"logistics-route-service/internal/services"
)

// main is the application composition root.
// It wires postgres repositories behind ports, starts the cron scheduler
// for daily optimization and reconciliation, and serves the HTTP API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	warehouseRepo := repositories.NewPostgresWarehouseRepository(database)
	orderRepo := repositories.NewPostgresOrderRepository(database)
	fleetRepo := repositories.NewPostgresFleetRepository(database)
	routeRepo := repositories.NewPostgresRouteRepository(database)

	optimizer := &services.Optimizer{
		Warehouses: warehouseRepo,
		Orders:     orderRepo,
		Fleet:      fleetRepo,
		Routes:     routeRepo,
		Planner:    cfg.Planner,
	}
	tracker := &services.Tracker{Routes: routeRepo}

	scheduler := jobs.NewScheduler(optimizer, tracker, cfg)
	if err := scheduler.Start(); err != nil {
		log.Fatal(err)
	}
	defer scheduler.Stop()

	router := api.NewRouter(optimizer, tracker, routeRepo, cfg.VehicleType)

	// Write timeout must outlast the route-search budget plus commit.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Planner.SearchTimeBudget + 60*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
