// Command setrole assigns a role to an existing user by email.
package main

import (
	"context"
	"os"
	"time"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/service"
	"github.com/andrwlab/Season2App/internal/store"
	users "github.com/andrwlab/Season2App/internal/user"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	godotenv.Load()

	email := os.Getenv("USER_EMAIL")
	if email == "" && len(os.Args) > 1 {
		email = os.Args[1]
	}
	if email == "" {
		log.Fatal().Msg("USER_EMAIL env var or first argument is required")
	}

	roleStr := os.Getenv("USER_ROLE")
	if roleStr == "" && len(os.Args) > 2 {
		roleStr = os.Args[2]
	}
	if roleStr == "" {
		roleStr = string(users.RoleScorekeeper)
	}

	role := users.Role(roleStr)
	switch role {
	case users.RoleViewer, users.RoleScorekeeper, users.RoleAdmin:
	default:
		log.Fatal().Str("role", roleStr).Msg("unknown role, want viewer, scorekeeper or admin")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "league.db"
	}
	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()
	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userService := service.NewUserService(database, store.NewUserStore(database))
	previous, err := userService.SetRoleByEmail(context.Background(), email, role)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("failed to set role")
	}

	log.Info().Str("email", email).Str("from", string(previous)).Str("to", string(role)).Msg("role updated")
}
