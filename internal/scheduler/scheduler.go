package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/dedup"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scraper"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// Scheduler 周期性跑完整抓取任务：抓取全部源 → 去重合并 → 落盘 → 重建汇总文件
type Scheduler struct {
	cron    *cron.Cron
	scraper *scraper.Scraper
	dedup   *dedup.Deduplicator
	store   *storage.Store
}

func New(spec string, sc *scraper.Scraper, d *dedup.Deduplicator, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		scraper: sc,
		dedup:   d,
		store:   store,
	}

	if _, err := c.AddFunc(spec, func() { s.RunOnce() }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start 启动定时任务，并立即在后台跑一轮，不用等第一个周期才有数据
func (s *Scheduler) Start() {
	s.cron.Start()
	go s.RunOnce()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 执行一轮完整抓取，返回汇总文件总条数与本轮新增条数。
// 单个源的失败不会中断其它源；汇总文件必须等所有源写完之后再重建
func (s *Scheduler) RunOnce() (total, totalNew int) {
	log.Println("start scrape job...")

	results := s.scraper.ScrapeAll()

	for _, name := range s.scraper.SourceNames() {
		articles := results[name]
		if len(articles) == 0 {
			continue
		}

		// 新增数要在 Merge 之前算，Merge 会把这批 URL 写进缓存
		newCount := len(articles) - s.dedup.DuplicateCount(name, articles)

		merged := s.dedup.Merge(name, articles)
		if s.store.SaveArticles(name, merged) == 0 {
			log.Printf("scheduler: save %s failed, skipping", name)
			continue
		}

		totalNew += newCount
		log.Printf("scheduler: %s done, %d found, %d new", name, len(articles), newCount)
	}

	total = s.store.UpdateCombinedFile()
	log.Printf("scrape job done: total=%d new=%d", total, totalNew)
	return total, totalNew
}
