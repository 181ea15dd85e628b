package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"judol-guard/api/router"
	"judol-guard/config"
	"judol-guard/db"
	"judol-guard/groq"
	"judol-guard/harvester"
	"judol-guard/logger"
	"judol-guard/repositories"
	"judol-guard/services"
	"judol-guard/youtube"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal("failed to initialize Postgres:", err)
	}
	defer db.Close()

	pool := db.Pool()
	blocklistRepo := repositories.NewBlocklistRepository(pool)
	blocklistSvc := services.NewBlocklistService(blocklistRepo, cfg.Pipeline)

	moderationSvc := services.NewModerationService(services.ModerationDeps{
		Channels:   repositories.NewChannelRepository(pool),
		Comments:   repositories.NewJudolCommentRepository(pool),
		Batches:    repositories.NewLLMBatchRepository(pool),
		Blocklists: blocklistRepo,
		Harvester: harvester.New(
			youtube.NewClient(cfg.YouTube),
			repositories.NewCommentPageRepository(pool),
			time.Duration(cfg.Pipeline.CacheTTLHours)*time.Hour,
		),
		Provider: groq.NewClient(cfg.Groq),
	}, cfg.Groq, cfg.Pipeline)

	r, err := router.New(cfg, blocklistSvc, moderationSvc)
	if err != nil {
		log.Fatal(err)
	}
	if err := r.Run(":8080"); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
