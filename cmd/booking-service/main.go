package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"ms-boxoffice/internal/auth"
	"ms-boxoffice/internal/booking"
	"ms-boxoffice/internal/booking/booking_api"
	"ms-boxoffice/internal/config"
	"ms-boxoffice/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH", "JWT_SECRET not set")
	}

	httpClient := &http.Client{Timeout: cfg.Booking.RequestTimeout}
	catalog := booking.NewHTTPCatalogClient(cfg.Booking.CatalogURL, httpClient)
	service := booking.NewBookingService(catalog, log)
	handler := booking_api.NewHandler(service, log)

	r := chi.NewRouter()
	r.Route("/bookings", func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Auth.JWTSecret))
		r.Post("/confirm", handler.ConfirmBooking)
	})

	port := os.Getenv("BOOKING_PORT")
	if port == "" {
		port = ":6003"
	}

	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("🚀 Booking service on %s", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "✅ Booking service shutdown complete")
}
