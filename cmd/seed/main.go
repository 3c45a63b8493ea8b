package main

import (
	"context"
	"errors"
	"flag"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/service"
	"github.com/corehr/employee-api/internal/infrastructure/config"
	"github.com/corehr/employee-api/internal/infrastructure/db/postgres"
	"github.com/corehr/employee-api/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "login name of the user to create")
	password := flag.String("password", "admin123", "plaintext password, stored as a bcrypt hash")
	role := flag.String("role", domain.RoleAdmin, "role to grant: admin or user")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	if *role != domain.RoleAdmin && *role != domain.RoleUser {
		log.Fatal().Str("role", *role).Msg("role must be admin or user")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	hash, err := service.NewBcryptHasher(cfg.BcryptCost).Hash(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	user, err := postgres.NewUserRepository(pool).Create(ctx, &domain.User{
		Username:     *username,
		PasswordHash: hash,
		Role:         *role,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Info().Str("username", *username).Msg("user already exists, nothing to do")
		return
	case err != nil:
		log.Fatal().Err(err).Msg("failed to create user")
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("user created")
}
