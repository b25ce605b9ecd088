package cmd

import (
	"os"

	"lesson-reservations/internal/config"
	"lesson-reservations/internal/infrastructure/database"
	"lesson-reservations/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration management",
	Long:  "Manage database migrations for the lesson reservation system",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run pending migrations",
	Long:  "Bring the database schema up to date",
	Run:   runMigrateUp,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) {
	db, err := connectDatabase()
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

func connectDatabase() (*gorm.DB, error) {
	cfg := config.Get()
	return database.NewConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
}
