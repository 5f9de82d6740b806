package main

import (
	"context"
	"log"

	"scireason-be/internal/bootstrap"
	"scireason-be/internal/config"
	"scireason-be/internal/model"
	"scireason-be/internal/server"
	"scireason-be/internal/tracer"
	"scireason-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; empty DSN runs the in-memory store)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(
			&model.User{},
			&model.ReasoningSession{},
			&model.EvidenceCard{},
			&model.HypothesisCard{},
			&model.RoadmapCard{},
		); err != nil {
			log.Panicf("Unable to migrate schema: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	if err := container.AnalysisConsumer.Start(context.Background(), container.PubSub); err != nil {
		log.Panicf("Unable to start analysis consumer: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
