package main

import (
	"log"
	"time"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/dedup"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scheduler"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scraper"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// 只执行一轮抓取后退出的命令行入口，适合手动触发或外部 cron 调用
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

	total, totalNew := s.RunOnce()
	log.Printf("scrape complete: %d articles total, %d new", total, totalNew)
}
