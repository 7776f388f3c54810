package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genzmart-be/internal/checkout"
	"genzmart-be/internal/config"
	"genzmart-be/internal/db"
	"genzmart-be/internal/handler"
	"genzmart-be/internal/logger"
	"genzmart-be/internal/order"
	"genzmart-be/internal/payment"
	"genzmart-be/internal/product"
	"genzmart-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) *gin.Engine {
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	paymentRepo := payment.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	checkoutSvc := checkout.NewService(gateway, paymentRepo, orderSvc)

	return handler.NewRouter(handler.Router{
		Payments: handler.NewPaymentHandler(gateway, paymentRepo, orderSvc),
		Checkout: handler.NewCheckoutHandler(checkoutSvc),
		Auth:     handler.NewAuthHandler(userSvc),
		Admin:    handler.NewAdminHandler(productSvc, orderSvc, userSvc),
		Products: productSvc,
	})
}

// startServer runs the HTTP server and drains in-flight requests on
// SIGINT/SIGTERM before exiting.
func startServer(addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
