// Package main initializes and starts the contactdesk HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers and routing.
package main

import (
	"context"
	"fmt"

	nethttp "net/http"

	"contactdesk/internal/config"
	"contactdesk/internal/db"
	"contactdesk/internal/logger"
	"contactdesk/internal/repository"
	"contactdesk/internal/server/handler/http"
	"contactdesk/internal/service"

	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s if it is non-empty, otherwise fallback.
// It mirrors cmp.Or for strings, which needs Go 1.22+.
func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	contactRepo := repository.NewPostgresContactRepository(postgresDB)
	addressRepo := repository.NewPostgresAddressRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	contactService := service.NewContactService(contactRepo)
	addressService := service.NewAddressService(addressRepo, contactRepo)

	// Create HTTP handlers for the user, contact and address endpoints.
	userHandler := &http.UserHandler{UserService: userService}
	contactHandler := &http.ContactHandler{ContactService: contactService}
	addressHandler := &http.AddressHandler{AddressService: addressService}

	// Build the router with middleware and routes. The user service doubles
	// as the token resolver for the authentication middleware.
	router := http.NewRouter(userHandler, contactHandler, addressHandler, userService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
