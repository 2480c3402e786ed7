package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-service/config"
	"course-service/database"
	"course-service/routers"
	"course-service/services"
	"course-service/utils"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to open logs: %v", err)
	}
	defer logger.Close()

	db, err := database.ConnectDb(cfg, logger)
	if err != nil {
		logger.Errorf("[DATABASE] %v", err)
		os.Exit(2)
	}
	defer database.Close(db)

	if cfg.IntegrityCron != "" {
		sweeper := services.NewIntegrityService(database.NewCourseRepository(db), logger)
		scheduler, err := utils.StartIntegrityScheduler(cfg.IntegrityCron, sweeper, logger)
		if err != nil {
			logger.Errorf("[INTEGRITY-SCHEDULER] %v", err)
			os.Exit(2)
		}
		defer scheduler.Stop()
	}

	app := routers.NewApp(routers.Dependencies{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		AccessLog: logger.Writer(),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Infof("[SERVER] Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Errorf("[SERVER] Shutdown error: %v", err)
		}
	}()

	logger.Infof("[SERVER] Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Errorf("[SERVER] %v", err)
	}
	logger.Infof("[SERVER] Server stopped")
}
