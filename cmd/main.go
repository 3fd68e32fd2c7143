// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/albertoramos98/hostflow-homolog/internal/config"
	"github.com/albertoramos98/hostflow-homolog/internal/database"
	"github.com/albertoramos98/hostflow-homolog/internal/handler"
	"github.com/albertoramos98/hostflow-homolog/internal/model"
	"github.com/albertoramos98/hostflow-homolog/internal/redisx"
	"github.com/albertoramos98/hostflow-homolog/internal/repository"
	"github.com/albertoramos98/hostflow-homolog/internal/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	log.Println("✓ Connected to PostgreSQL")

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("✓ Schema up to date")

	// ── 2. Optional Redis calendar cache ─────────────────────────────────
	var cache service.CalendarCache
	if cfg.RedisAddr != "" {
		rdb, err := redisx.New(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		cache = redisx.NewCalendarCache(rdb, cfg.CalendarCacheTTL)
		log.Println("✓ Connected to Redis")
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	policy := service.DefaultPolicy()
	if cfg.PendingBlocksAvailability {
		policy.BlockingStatuses = append(policy.BlockingStatuses, model.StatusPending)
	}
	policy.QualifyingStatuses = cfg.GuestStatsStatuses
	policy.ClampOccupancy = cfg.ClampOccupancy

	store := repository.NewStore(pool)
	availabilitySvc := service.NewAvailabilityService(store, policy, cache)
	aggregator := service.NewGuestStatsAggregator(store, policy)
	reservationSvc := service.NewReservationService(store, availabilitySvc, aggregator, policy)
	inventorySvc := service.NewInventoryService(store)
	reportingSvc := service.NewReportingService(store, policy)

	inventoryHandler := handler.NewInventoryHandler(inventorySvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc, aggregator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	reportingHandler := handler.NewReportingHandler(reportingSvc)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // access log
	r.Use(handler.CORS)            // permissive CORS for the booking front end

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/properties", func(r chi.Router) {
		r.Post("/", inventoryHandler.CreateProperty)
		r.Get("/", inventoryHandler.ListProperties)
		r.Get("/{id}", inventoryHandler.GetProperty)
		r.Patch("/{id}", inventoryHandler.UpdateProperty)
		r.Delete("/{id}", inventoryHandler.DeactivateProperty)
		r.Get("/{id}/stats", reportingHandler.PropertyStats)
	})

	r.Route("/accommodations", func(r chi.Router) {
		r.Post("/", inventoryHandler.CreateAccommodation)
		r.Get("/", inventoryHandler.ListAccommodations)
		r.Get("/search", availabilityHandler.Search)
		r.Get("/{id}", inventoryHandler.GetAccommodation)
		r.Patch("/{id}", inventoryHandler.UpdateAccommodation)
		r.Delete("/{id}", inventoryHandler.DeactivateAccommodation)
		r.Get("/{id}/availability", availabilityHandler.Check)
		r.Get("/{id}/quote", availabilityHandler.Quote)
		r.Get("/{id}/calendar", availabilityHandler.Calendar)
	})

	r.Route("/guests", func(r chi.Router) {
		r.Post("/", inventoryHandler.CreateGuest)
		r.Get("/", inventoryHandler.ListGuests)
		r.Get("/{id}", inventoryHandler.GetGuest)
		r.Patch("/{id}", inventoryHandler.UpdateGuest)
		r.Delete("/{id}", inventoryHandler.DeactivateGuest)
		r.Post("/{id}/stats", reservationHandler.GuestStats)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", reservationHandler.Create)
		r.Get("/", reservationHandler.List)
		r.Get("/code/{code}", reservationHandler.GetByCode)
		r.Get("/{id}", reservationHandler.Get)
		r.Patch("/{id}", reservationHandler.UpdateFees)
		r.Post("/{id}/confirm", reservationHandler.Confirm)
		r.Post("/{id}/cancel", reservationHandler.Cancel)
		r.Post("/{id}/checkin", reservationHandler.CheckIn)
		r.Post("/{id}/checkout", reservationHandler.CheckOut)
		r.Patch("/{id}/payment", reservationHandler.UpdatePayment)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/bookings", reportingHandler.BookingStats)
		r.Get("/calendar", reportingHandler.CalendarEvents)
	})

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("✓ Server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
