package bootstrap

import "github.com/trash2cash/rewards/internal/pkg/database"

type RewardsConfig struct {
	DbSettings database.PostgresSettings
	JwtSecret  string
	HttpPort   string
}
