package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/env"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/bootstrap"
	"github.com/trash2cash/rewards/migrations"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLogger := logging.StdoutLogger

	if err := godotenv.Load(); err != nil {
		defaultLogger.Info("no .env file found, relying on environment")
	}

	httpPort := ":8080"
	jwtSecret := "test-secret"
	databaseSettings := database.PostgresSettings{
		User:       "admin",
		Password:   "password",
		Host:       "localhost",
		Port:       "5432",
		DBName:     "rewards_db",
		SSlEnabled: false,
	}

	env.TrySetFromEnv(env.EnvHttpPort, &httpPort)
	env.TrySetFromEnv(env.EnvJwtSecret, &jwtSecret)
	env.TrySetFromEnv(env.EnvDatabaseUser, &databaseSettings.User)
	env.TrySetFromEnv(env.EnvDatabasePassword, &databaseSettings.Password)
	env.TrySetFromEnv(env.EnvDatabaseHost, &databaseSettings.Host)
	env.TrySetFromEnv(env.EnvDatabasePort, &databaseSettings.Port)
	env.TrySetFromEnv(env.EnvDatabaseName, &databaseSettings.DBName)

	if err := database.MigrateDatabase(databaseSettings.GetURL(), migrations.FS, ".", "pgx", "postgres"); err != nil {
		defaultLogger.Error("failed to migrate database", "error", err.Error())
		return
	}

	app := bootstrap.NewRewardsApp(bootstrap.RewardsConfig{
		DbSettings: databaseSettings,
		JwtSecret:  jwtSecret,
		HttpPort:   httpPort,
	}, defaultLogger)

	if err := app.Run(mainCtx); err != nil {
		defaultLogger.Error("application stopped with error", "error", err.Error())
	}

	app.Shutdown()
}
