package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/api"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/dedup"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scheduler"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scraper"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// API 服务入口：对外提供查询接口，同时内嵌定时抓取
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

	r := gin.Default()
	api.NewServer(store, sc, d, s).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
