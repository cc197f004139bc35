package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pedidos-service/config"
	"pedidos-service/internal/api"
	"pedidos-service/internal/service"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting pedidos service")

	tp, err := util.InitTracer("pedidos-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	gate := store.NewGate()
	st, err := store.New(cfg.Database.Path, gate)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	// Initialization failure is not fatal to the process: the gate stays
	// false and every operation degrades until the next restart, mirroring
	// how the presentation layer expects to report the condition.
	if err := st.Initialize(context.Background()); err != nil {
		logger.Error("Store initialization failed; serving with readiness false", zap.Error(err))
	}

	go func() {
		for ready := range gate.Subscribe() {
			logger.Info("Readiness changed", zap.Bool("ready", ready))
		}
	}()

	pedidoService := service.NewPedidoService(st)
	clienteService := service.NewClienteService(st)
	catalogService := service.NewCatalogService(st)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(pedidoService, clienteService, catalogService, gate)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
