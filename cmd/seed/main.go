// Seeds the default admin account and baseline admin settings.
package main

import (
	"context"
	"log"

	"benixspace-be/internal/config"
	"benixspace-be/internal/entity"
	"benixspace-be/internal/repository/unitofwork"
	"benixspace-be/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	// Default admin account, idempotent.
	admin, err := uow.UserRepository().FindByEmail(ctx, "admin@benixspace.com")
	if err != nil {
		log.Fatalf("Error: Failed to look up admin user: %v", err)
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error: Failed to hash password: %v", err)
		}
		if err := uow.UserRepository().Create(ctx, &entity.User{
			Username:     "admin",
			Email:        "admin@benixspace.com",
			PasswordHash: string(hash),
			IsAdmin:      true,
		}); err != nil {
			log.Fatalf("Error: Failed to create admin user: %v", err)
		}
		log.Println("Seeded admin user (admin@benixspace.com / admin123, change it)")
	}

	// Baseline settings mirror the built-in plan configuration so the
	// admin panel shows editable values from day one.
	settings := map[string]string{
		entity.SettingPlanPrices:     `{"basic":5,"standard":10,"premium":20}`,
		entity.SettingSongLimits:     `{"basic":2,"standard":5,"premium":-1}`,
		entity.SettingFreeTrialDays:  `14`,
		entity.SettingTrialSongLimit: `2`,
	}
	for key, value := range settings {
		existing, err := uow.AdminSettingRepository().Get(ctx, key)
		if err != nil {
			log.Fatalf("Error: Failed to read setting %s: %v", key, err)
		}
		if existing != nil {
			continue
		}
		if err := uow.AdminSettingRepository().Set(ctx, key, value); err != nil {
			log.Fatalf("Error: Failed to seed setting %s: %v", key, err)
		}
		log.Printf("Seeded setting %s", key)
	}

	log.Println("Seed complete.")
}
