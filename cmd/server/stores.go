package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"healthcare-portal/internal/config"
	apphttp "healthcare-portal/internal/http"
	"healthcare-portal/internal/repository"
	"healthcare-portal/internal/repository/mongodb"
	"healthcare-portal/internal/repository/postgres"
	"healthcare-portal/internal/repository/sqlite"
	"healthcare-portal/internal/session"
)

// stores owns every backing connection opened for one process.
type stores struct {
	users    repository.UserRepository
	patients repository.PatientRepository
	sessions session.Store
	health   []apphttp.HealthCheck

	closers []func()
}

func openStores(ctx context.Context, cfg config.Config, logger *logrus.Logger) (_ *stores, err error) {
	s := &stores{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Database.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		userRepo := postgres.NewUserRepository(db)
		s.users = userRepo
		s.patients = postgres.NewPatientRepository(db)
		s.health = append(s.health, apphttp.HealthCheck{Name: "postgres", Label: "PostgreSQL", Ping: userRepo.Ping})
	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		s.closers = append(s.closers, func() { _ = db.Close() })
		userRepo := sqlite.NewUserRepository(db)
		s.users = userRepo
		s.patients = sqlite.NewPatientRepository(db)
		s.health = append(s.health, apphttp.HealthCheck{Name: "sqlite", Label: "SQLite", Ping: userRepo.Ping})
	}

	if cfg.Users.Backend == config.UsersMongo {
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.MongoTimeout())
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Disconnect(context.Background()) })
		userRepo := mongodb.NewUserRepository(client.Database(cfg.Mongo.Database))
		s.users = userRepo
		s.health = append(s.health, apphttp.HealthCheck{Name: "mongo", Label: "MongoDB", Ping: userRepo.Ping})
	}

	if err := s.users.Init(ctx); err != nil {
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	if err := s.patients.Init(ctx); err != nil {
		return nil, fmt.Errorf("init patient repository: %w", err)
	}

	switch cfg.Session.Store {
	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis not reachable yet, sessions will degrade to anonymous")
		}
		s.sessions = session.NewRedisStore(client)
		s.health = append(s.health, apphttp.HealthCheck{Name: "redis", Label: "Redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	default:
		s.sessions = session.NewMemoryStore()
	}

	logger.WithFields(logrus.Fields{
		"database": cfg.Database.Driver,
		"users":    cfg.Users.Backend,
		"sessions": cfg.Session.Store,
	}).Info("stores ready")
	return s, nil
}

// Close releases connections in reverse order of opening.
func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
