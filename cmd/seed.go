package cmd

import (
	"context"
	"os"
	"time"

	"lesson-reservations/internal/auth"
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/infrastructure/database"
	"lesson-reservations/internal/infrastructure/repository"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample data",
	Long:  "Insert sample lessons and a default admin user for development",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	db, err := connectDatabase()
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	lessonRepo := repository.NewLessonRepository(db)
	userRepo := repository.NewUserRepository(db)

	existing, err := lessonRepo.GetAll(ctx)
	if err != nil {
		logger.Error("Failed to inspect lessons: %v", err)
		os.Exit(1)
	}
	if len(existing) == 0 {
		samples := []domain.LessonInput{
			{
				Title:     "Cvičení pro maminky s dětmi - Pondělí dopoledne",
				Date:      nextWeekday(time.Monday),
				DayOfWeek: "Monday",
				Time:      "10:00",
				Location:  "CVČ Vietnamská",
				AgeGroup:  "3-12 months",
				Capacity:  10,
			},
			{
				Title:     "Cvičení pro maminky s dětmi - Úterý odpoledne",
				Date:      nextWeekday(time.Tuesday),
				DayOfWeek: "Tuesday",
				Time:      "14:00",
				Location:  "CVČ Jeremiáše",
				AgeGroup:  "1-2 years",
				Capacity:  12,
			},
			{
				Title:     "Cvičení pro maminky s dětmi - Středa dopoledne",
				Date:      nextWeekday(time.Wednesday),
				DayOfWeek: "Wednesday",
				Time:      "10:00",
				Location:  "DK Poklad",
				AgeGroup:  "2-3 years",
				Capacity:  15,
			},
		}
		for _, input := range samples {
			if err := lessonRepo.Create(ctx, domain.NewLesson(input)); err != nil {
				logger.Error("Failed to seed lesson %q: %v", input.Title, err)
				os.Exit(1)
			}
		}
		logger.Info("Seeded %d sample lessons", len(samples))
	}

	admin, err := userRepo.GetByEmail(ctx, "admin@centrumrubacek.cz")
	if err != nil {
		logger.Error("Failed to look up admin user: %v", err)
		os.Exit(1)
	}
	if admin == nil {
		hash, err := auth.HashPassword("admin123")
		if err != nil {
			logger.Error("Failed to hash admin password: %v", err)
			os.Exit(1)
		}
		user := &domain.User{
			UserID:       uuid.New(),
			Email:        "admin@centrumrubacek.cz",
			PasswordHash: hash,
			Name:         "Admin",
			Role:         domain.RoleAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Error("Failed to seed admin user: %v", err)
			os.Exit(1)
		}
		logger.Info("Default admin user created: admin@centrumrubacek.cz / admin123")
	}

	logger.Info("Sample data seeded")
}

// nextWeekday returns the next calendar date falling on the given weekday,
// at least one day in the future.
func nextWeekday(day time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(domain.DateLayout)
}
