package main

import (
	"context"
	"log"

	"benixspace-be/internal/bootstrap"
	"benixspace-be/internal/config"
	"benixspace-be/internal/server"
	"benixspace-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start background consumers
	if err := container.AuditConsumer.Consume(context.Background()); err != nil {
		log.Printf("Background consumer error: %v", err)
	}

	// 5. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
