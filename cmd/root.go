package cmd

import (
	"fmt"
	"os"

	"lesson-reservations/internal/config"
	"lesson-reservations/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lesson-reservations",
	Short: "Lesson reservation system for a children's activity center",
	Long: `Backend for managing activity lessons, registrations and attendance.
This system provides:
- Capacity-bound lesson registration with automatic waitlisting
- Participant self-service with age-group and deadline policies
- Admin overrides for capacity and age-group limits
- Course templates expanded into lesson schedules
- Bulk cohort assignment and spreadsheet participant intake
Example usage:
  lesson-reservations server --port 8080   # Start the API server
  lesson-reservations migrate up           # Run database migrations
  lesson-reservations seed                 # Insert sample data`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if err := logger.InitWithConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output); err != nil {
			logger.Init(verbose)
			logger.Warn("Failed to initialize logger with config, using fallback: %v", err)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.Init()
}
