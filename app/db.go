package app

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func createSQLDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(os.Getenv("SQL_DB_ADDRESS")), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	return db
}

func createRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDRESS"),
		PoolSize: 10,
	})
}

type tableCreator interface {
	CreateTable() error
}

func (app *Application) migrateAndSeed() error {
	for _, s := range []tableCreator{
		app.UserStore,
		app.SettingsStore,
		app.ThemeStore,
		app.CustomThemeStore,
		app.PlaylistStore,
		app.SongStore,
		app.PlaylistSongStore,
		app.PomodoroStore,
		app.VerificationTokenStore,
		app.ResetTokenStore,
		app.LoginAttemptStore,
	} {
		if err := s.CreateTable(); err != nil {
			return err
		}
	}

	return app.seedThemes()
}

// seedThemes installs the built-in themes on first start.
func (app *Application) seedThemes() error {
	exists, err := app.ThemeStore.IsExists("1 = 1")
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	builtins := []models.ThemeDBModel{
		{
			Name:            "Deep Space",
			Description:     "Dark starfield for late night focus",
			BackgroundColor: "#0b0e1a",
			TextColor:       "#e6e8f0",
			IsDefault:       true,
		},
		{
			Name:            "Lofi Cafe",
			Description:     "Warm tones and rain on the window",
			BackgroundColor: "#3b2f2f",
			TextColor:       "#f5e9da",
		},
		{
			Name:            "Forest",
			Description:     "Green and quiet",
			BackgroundColor: "#1d3324",
			TextColor:       "#e3efe6",
		},
		{
			Name:            "Sunset",
			Description:     "Orange gradient with soft contrast",
			BackgroundColor: "#7a2d26",
			TextColor:       "#fbeee4",
		},
	}

	for _, theme := range builtins {
		theme.ThemeID = uuid.NewString()
		if err := app.ThemeStore.Create(theme); err != nil {
			return err
		}
	}

	return nil
}
