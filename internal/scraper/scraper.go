package scraper

import (
	"log"
	"time"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/parser"
)

// ContentFetcher 抓取原始内容的最小契约，方便测试替换
type ContentFetcher interface {
	Fetch(url string) (string, error)
}

// Scraper 驱动所有配置源的抓取与解析
type Scraper struct {
	cfg     *config.SourcesConfig
	fetcher ContentFetcher
}

func New(cfg *config.SourcesConfig, fetcher ContentFetcher) *Scraper {
	return &Scraper{cfg: cfg, fetcher: fetcher}
}

// ScrapeSource 抓取单个源：拉取 → 解析 → 按上限截断。
// 抓取失败记日志并返回空列表，不影响其它源
func (s *Scraper) ScrapeSource(src config.Source) []parser.Article {
	log.Printf("scraper: scraping %s from %s", src.Name, src.URL)

	content, err := s.fetcher.Fetch(src.URL)
	if err != nil {
		log.Printf("scraper: fetch %s: %v", src.Name, err)
		return nil
	}

	articles := parser.New(src).Parse(content)
	log.Printf("scraper: found %d articles from %s", len(articles), src.Name)

	max := src.MaxArticles
	if max <= 0 {
		max = s.cfg.Defaults.MaxArticlesPerSource
	}
	if max > 0 && len(articles) > max {
		articles = articles[:max]
	}
	return articles
}

// ScrapeAll 顺序抓取全部源，源与源之间按配置的间隔限速。
// 单个源失败只在结果里留一个空列表
func (s *Scraper) ScrapeAll() map[string][]parser.Article {
	results := make(map[string][]parser.Article, len(s.cfg.Sources))
	for i, src := range s.cfg.Sources {
		results[src.Name] = s.ScrapeSource(src)

		if d := src.RateLimitSeconds; d > 0 && i < len(s.cfg.Sources)-1 {
			time.Sleep(time.Duration(d) * time.Second)
		}
	}
	return results
}

// ScrapeByName 按名字抓取单个源，没配置过的源返回空列表
func (s *Scraper) ScrapeByName(name string) []parser.Article {
	for _, src := range s.cfg.Sources {
		if src.Name == name {
			return s.ScrapeSource(src)
		}
	}
	log.Printf("scraper: source not found: %s", name)
	return nil
}

// SourceNames 按配置顺序返回所有源的名字
func (s *Scraper) SourceNames() []string {
	names := make([]string, 0, len(s.cfg.Sources))
	for _, src := range s.cfg.Sources {
		names = append(names, src.Name)
	}
	return names
}
