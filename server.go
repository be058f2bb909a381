package main

import (
	"context"
	"log"

	"ngi/config"
	"ngi/jobs"
	"ngi/routes"
	"ngi/services"
	"ngi/services/logger"
	"ngi/services/notification"
	"ngi/validator"
)

func serve(cfg *config.Config) error {
	appLogger, err := logger.NewFileLogger(cfg.LogDir, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
		appLogger = logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	}

	components, err := config.InitComponents(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(components.DB); err != nil {
		return err
	}
	if err := validator.RegisterGinValidations(); err != nil {
		return err
	}

	router, m, c := config.InitApp(cfg)
	loc := cfg.Location()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := notification.NewRedisBus(components.Redis, "", appLogger)
	go func() {
		if err := bus.Run(ctx, nil); err != nil {
			appLogger.Error("event bus stopped: %v", err)
		}
	}()
	defer notification.Forward(bus, notification.NewMelodyService(m), appLogger)()

	store := services.NewAvailabilityStore(services.AvailabilityStoreOptions{
		DB:       components.DB,
		Bus:      bus,
		Logger:   appLogger,
		Location: loc,
	})
	cache := services.NewAvailabilityCache(components.Redis, store.Snapshot, appLogger)
	defer cache.Watch(bus)()

	bookings := services.NewBookingService(services.BookingServiceOptions{
		DB:       components.DB,
		Bus:      bus,
		Logger:   appLogger,
		Location: loc,
	})
	uploader := services.NewCloudinaryUploader(components.Cloudinary)
	facade := services.NewBookingFacade(bookings, uploader, services.NewFallbackQueue(components.Redis, appLogger), appLogger)

	auth, err := services.NewAuthService(services.AuthServiceOptions{
		Username:       cfg.AdminUser,
		Password:       cfg.AdminPassword,
		Secret:         cfg.JWTSecret,
		GoogleClientID: cfg.GoogleClientID,
		AdminEmails:    cfg.AdminEmails,
		Logger:         appLogger,
	})
	if err != nil {
		return err
	}

	if err := jobs.InitCronJobs(c, facade, cache, appLogger); err != nil {
		return err
	}
	defer c.Stop()

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, routes.Dependencies{
		Config:       cfg,
		Logger:       appLogger,
		Redis:        components.Redis,
		Auth:         auth,
		Availability: store,
		Cache:        cache,
		Bookings:     bookings,
		Facade:       facade,
		Payments: services.NewPaymentService(services.PaymentServiceOptions{
			DB:        components.DB,
			Logger:    appLogger,
			KeyID:     cfg.PaymentKeyID,
			KeySecret: cfg.PaymentSecret,
		}),
		Uploader: uploader,
		Reviews:  services.NewReviewService(services.ReviewServiceOptions{DB: components.DB, Logger: appLogger}),
		Gallery: services.NewGalleryService(services.GalleryServiceOptions{
			DB:       components.DB,
			Logger:   appLogger,
			Uploader: uploader,
		}),
		Leads:  services.NewLeadService(services.LeadServiceOptions{DB: components.DB, Logger: appLogger}),
		Export: services.NewExportService(components.DB),
	})

	appLogger.Info("Server starting on port %s...", cfg.Port)
	return router.Run(":" + cfg.Port)
}
