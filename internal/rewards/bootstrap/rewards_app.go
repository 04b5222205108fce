package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/jwt"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/pkg/metrics"
	"github.com/trash2cash/rewards/internal/rewards/application"
	httpwrap "github.com/trash2cash/rewards/internal/rewards/infrastructure/http"
	"github.com/trash2cash/rewards/internal/rewards/infrastructure/postgres"
)

const (
	shutdownTimeout = 5 * time.Second
)

type RewardsApp struct {
	cfg    RewardsConfig
	logger logging.Logger

	server *http.Server
	dbpool *pgxpool.Pool
}

func NewRewardsApp(cfg RewardsConfig, logger logging.Logger) *RewardsApp {
	return &RewardsApp{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *RewardsApp) Run(ctx context.Context) error {
	logger := a.logger

	dbpool, err := pgxpool.New(ctx, a.cfg.DbSettings.GetURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.dbpool = dbpool
	txManager := database.NewDelegateTxManager(dbpool)

	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)

	directory := postgres.NewDirectory(dbpool)
	balanceMutator := postgres.NewBalanceMutator()
	userLocker := postgres.NewUserLocker()
	entryStore := postgres.NewEntryStore(dbpool, logger)

	transferCase := application.NewTransferCase(txManager, directory, userLocker, balanceMutator, entryStore, logger)
	scanCase := application.NewScanCase(txManager, directory, balanceMutator, entryStore, logger)
	historyCase := application.NewHistoryCase(entryStore, directory, logger)

	router := gin.Default()

	pointsHandler := httpwrap.NewPointsHandler(transferCase, scanCase, historyCase, appMetrics, logger)

	api := router.Group("/api")
	{
		points := api.Group("/points", httpwrap.NewAuthMiddleware(a.cfg.JwtSecret, jwt.NewJWTTokenParser(), logger))
		{
			points.POST("/check-receiver", pointsHandler.CheckReceiver)
			points.POST("/transfer", pointsHandler.Transfer)
			points.POST("/qr-scan", pointsHandler.Scan)
			points.GET("", pointsHandler.History)
			points.GET("/recent", pointsHandler.Recent)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		if err := dbpool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a.server = &http.Server{
		Addr:    a.cfg.HttpPort,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "port", a.cfg.HttpPort)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("error while starting http server: %w", err)
			return
		}

		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *RewardsApp) Shutdown() {
	if a.server == nil {
		return
	}

	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", "error", err.Error())
	}

	a.dbpool.Close()
	a.logger.Info("http server stopped")
}
