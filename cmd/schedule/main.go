package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/dedup"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scheduler"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scraper"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// 定时抓取守护进程：启动后立即跑一轮，此后按 CRON_SPEC 周期执行
func main() {
	cfg := config.Load()

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("load sources config failed: %v", err)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	fetcher := scraper.NewFetcher(
		sources.Defaults.UserAgent,
		time.Duration(sources.Defaults.RequestTimeout)*time.Second,
		scraper.NewCacheClient(cfg.RedisAddr),
	)

	sc := scraper.New(sources, fetcher)
	d := dedup.New(store)

	s, err := scheduler.New(cfg.CronSpec, sc, d, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	log.Printf("scheduler started, spec=%q", cfg.CronSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.Stop()
	log.Println("scheduler stopped")
}
