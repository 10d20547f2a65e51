package dedup

import (
	"log"
	"strings"
	"sync"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/parser"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// Deduplicator 以 URL 为去重键，按源维护一份懒加载的已有 URL 缓存。
// 缓存在一次运行内保持有效，同一批次里重复的 URL 只会放行第一条
type Deduplicator struct {
	store *storage.Store

	mu       sync.Mutex
	urlCache map[string]map[string]struct{}
}

func New(store *storage.Store) *Deduplicator {
	return &Deduplicator{
		store:    store,
		urlCache: make(map[string]map[string]struct{}),
	}
}

// existingURLs 首次访问某个源时从存储加载 URL 集合；调用方必须持有 mu
func (d *Deduplicator) existingURLs(source string) map[string]struct{} {
	urls, ok := d.urlCache[source]
	if !ok {
		urls = make(map[string]struct{})
		for _, a := range d.store.LoadArticles(source) {
			urls[a.URL] = struct{}{}
		}
		d.urlCache[source] = urls
	}
	return urls
}

// hasValidDate 发布时间缺失时退回抓取时间；空值或 1970 开头的占位时间视为无效
func hasValidDate(a parser.Article) bool {
	date := a.PublishedDate
	if date == "" {
		date = a.ScrapedAt
	}
	if date == "" {
		return false
	}
	return !strings.HasPrefix(date, "1970")
}

// FilterNew 返回未入库且带有效日期的文章；放行的 URL 立即进缓存
func (d *Deduplicator) FilterNew(source string, articles []parser.Article) []parser.Article {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filterNewLocked(source, articles)
}

func (d *Deduplicator) filterNewLocked(source string, articles []parser.Article) []parser.Article {
	existing := d.existingURLs(source)

	fresh := make([]parser.Article, 0, len(articles))
	noDate := 0
	for _, a := range articles {
		if !hasValidDate(a) {
			noDate++
			continue
		}
		if _, ok := existing[a.URL]; ok {
			continue
		}
		fresh = append(fresh, a)
		existing[a.URL] = struct{}{}
	}

	if dup := len(articles) - len(fresh) - noDate; dup > 0 {
		log.Printf("dedup: filtered %d duplicate articles for %s", dup, source)
	}
	if noDate > 0 {
		log.Printf("dedup: filtered %d articles without dates for %s", noDate, source)
	}
	return fresh
}

// Merge 合并新旧文章：新的在前、旧的在后，入库顺序由此决定。
// 历史数据里的无日期记录也在这里一并清掉
func (d *Deduplicator) Merge(source string, articles []parser.Article) []parser.Article {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing := d.store.LoadArticles(source)
	fresh := d.filterNewLocked(source, articles)

	kept := make([]parser.Article, 0, len(existing))
	for _, a := range existing {
		if hasValidDate(a) {
			kept = append(kept, a)
		}
	}
	if removed := len(existing) - len(kept); removed > 0 {
		log.Printf("dedup: removed %d existing articles without dates for %s", removed, source)
	}

	if len(fresh) == 0 {
		log.Printf("dedup: no new articles for %s", source)
		return kept
	}
	log.Printf("dedup: %d new articles for %s", len(fresh), source)
	return append(fresh, kept...)
}

// DuplicateCount 统计一批文章里已入库的条数。纯查询，不把批次里的 URL 写进缓存
func (d *Deduplicator) DuplicateCount(source string, articles []parser.Article) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing := d.existingURLs(source)
	n := 0
	for _, a := range articles {
		if _, ok := existing[a.URL]; ok {
			n++
		}
	}
	return n
}

// ClearCache 存储被外部改写之后调用，强制下次访问重新从文件加载
func (d *Deduplicator) ClearCache() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urlCache = make(map[string]map[string]struct{})
}
