package main

import (
	"log"
	"net/http"

	_ "userhub/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/handler"
	"userhub/internal/health"
	"userhub/internal/metrics"
	"userhub/internal/repository"
	"userhub/internal/router"
	"userhub/internal/service"
)

// @title UserHub API
// @version 1.0
// @description User record management API with health monitoring probes.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	// Connection is asynchronous: the server starts serving immediately and
	// /ready flips once the store comes up.
	store := db.Open(cfg.MySQLDSN, cfg.DBPingTimeout)
	defer store.Close()

	m := metrics.New()

	userRepo := repository.NewUserRepository(store)
	userService := service.NewUserService(userRepo, service.NewUserValidator(), m)
	aggregator := health.New(store, cfg.Environment, m)

	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(aggregator)

	router.Register(e, userHandler, healthHandler)

	log.Printf("starting userhub (%s) on port %s", cfg.Environment, cfg.ServerPort)
	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
