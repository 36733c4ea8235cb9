package bootstrap

import (
	"benixspace-be/internal/config"
	"benixspace-be/internal/controller"
	appEvents "benixspace-be/internal/pkg/events"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/unitofwork"
	"benixspace-be/internal/service"
	"benixspace-be/pkg/music"
	"benixspace-be/pkg/music/openai"
	"benixspace-be/pkg/music/stability"
	"benixspace-be/pkg/music/tuneflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	SubscriptionController controller.ISubscriptionController
	GenerationController   controller.IGenerationController
	AdminController        controller.IAdminController

	// Background consumers (exposed for main.go to run)
	AuditConsumer *appEvents.AuditConsumer

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := appEvents.NewChannelPublisher(pubSub, sysLogger)
	auditConsumer := appEvents.NewAuditConsumer(pubSub, sysLogger)

	// 3. Music providers, in fallback priority order. Stability comes
	// last so its sample-beat degrade catches the unkeyed deployment.
	selector := music.NewSelector(
		sysLogger,
		cfg.Music.ProviderTimeout,
		tuneflow.New(cfg.Music.TuneflowAPIKey, cfg.Music.TuneflowBaseURL, cfg.App.MediaDir, sysLogger),
		openai.New(cfg.Music.OpenAIAPIKey, cfg.Music.OpenAIBaseURL, cfg.App.MediaDir, sysLogger),
		stability.New(cfg.Music.StabilityAPIKey, cfg.Music.StabilityBaseURL, cfg.App.MediaDir, cfg.Music.SampleBeatPath, sysLogger),
	)

	// 4. Services
	catalog := service.NewPlanCatalog(uowFactory, sysLogger)
	entitlementService := service.NewEntitlementService(uowFactory, catalog, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, catalog, entitlementService, publisher, sysLogger)
	generationService := service.NewGenerationService(uowFactory, entitlementService, selector, publisher, cfg.App.MediaDir, sysLogger)
	adminService := service.NewAdminService(uowFactory, catalog, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, cfg.Auth.JWTSecret),
		GenerationController:   controller.NewGenerationController(generationService, cfg.Auth.JWTSecret),
		AdminController:        controller.NewAdminController(adminService, cfg.Auth.JWTSecret),
		AuditConsumer:          auditConsumer,
		Logger:                 sysLogger,
	}
}
