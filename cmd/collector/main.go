package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"judol-guard/config"
	"judol-guard/db"
	"judol-guard/groq"
	"judol-guard/harvester"
	"judol-guard/logger"
	"judol-guard/models"
	"judol-guard/repositories"
	"judol-guard/services"
	"judol-guard/youtube"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize Postgres:", err)
	}
	defer db.Close()

	pool := db.Pool()
	channelRepo := repositories.NewChannelRepository(pool)

	// Seed monitored channels from configuration.
	for _, ch := range cfg.Channels {
		if err := channelRepo.Upsert(ctx, models.Channel{ID: ch.ID, Name: ch.Name, Weight: ch.Weight}); err != nil {
			log.Printf("failed to upsert channel %s: %v", ch.Name, err)
		}
	}

	svc := services.NewModerationService(services.ModerationDeps{
		Channels:   channelRepo,
		Comments:   repositories.NewJudolCommentRepository(pool),
		Batches:    repositories.NewLLMBatchRepository(pool),
		Blocklists: repositories.NewBlocklistRepository(pool),
		Harvester: harvester.New(
			youtube.NewClient(cfg.YouTube),
			repositories.NewCommentPageRepository(pool),
			time.Duration(cfg.Pipeline.CacheTTLHours)*time.Hour,
		),
		Provider: groq.NewClient(cfg.Groq),
	}, cfg.Groq, cfg.Pipeline)

	startScheduler(cfg.Pipeline, svc)
	defer stopScheduler()

	// Block until interrupted.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down collector...")
}

var c *cron.Cron

// startScheduler wires the two pipeline entry points to their cron specs.
// Each entry point is serialized by its own mutex; a tick that arrives while
// the previous run is still going is skipped.
func startScheduler(cfg config.PipelineConfig, svc *services.ModerationService) {
	log.Println("Initializing scheduler...")
	c = cron.New()

	var collectMu, checkMu sync.Mutex

	_, err := c.AddFunc(cfg.CollectCron, func() {
		if !collectMu.TryLock() {
			logger.Log.Warn("previous collect run still going, skipping tick")
			return
		}
		defer collectMu.Unlock()
		if err := svc.Collect(context.Background()); err != nil {
			logger.Log.Errorf("collect failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not set up collect cron job: %v", err)
	}

	_, err = c.AddFunc(cfg.CheckCron, func() {
		if !checkMu.TryLock() {
			logger.Log.Warn("previous check run still going, skipping tick")
			return
		}
		defer checkMu.Unlock()
		if err := svc.Check(context.Background()); err != nil {
			logger.Log.Errorf("check failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not set up check cron job: %v", err)
	}

	c.Start()
	log.Printf("Cron jobs scheduled (collect=%s, check=%s)", cfg.CollectCron, cfg.CheckCron)
}

func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
