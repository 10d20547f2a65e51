package dedup

import (
	"testing"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/parser"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return store
}

func article(url, published string) parser.Article {
	a := parser.NewArticle("Title "+url, url, "src", "Source", published, "")
	return a
}

func TestFilterNewCollapsesBatchDuplicates(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	batch := []parser.Article{
		article("https://example.com/1", "2024-01-15T00:00:00Z"),
		article("https://example.com/1", "2024-01-15T00:00:00Z"), // 同批次重复 URL
		article("https://example.com/2", "2024-01-16T00:00:00Z"),
	}

	fresh := d.FilterNew("src", batch)
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh articles, got %d", len(fresh))
	}
	if fresh[0].URL != "https://example.com/1" || fresh[1].URL != "https://example.com/2" {
		t.Fatalf("unexpected order: %q, %q", fresh[0].URL, fresh[1].URL)
	}
}

func TestFilterNewExcludesDateless(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	noDates := []parser.Article{
		{URL: "https://example.com/no-dates"},                                        // 两个时间都缺
		{URL: "https://example.com/epoch", PublishedDate: "1970-01-01"},              // epoch 占位
		{URL: "https://example.com/epoch-scrape", ScrapedAt: "1970-01-01T00:00:00Z"}, // 抓取时间也是占位
	}
	if fresh := d.FilterNew("src", noDates); len(fresh) != 0 {
		t.Fatalf("dateless articles should be excluded, got %d", len(fresh))
	}

	// 没有发布时间但抓取时间有效的记录要放行
	withScrape := parser.NewArticle("t", "https://example.com/scraped-only", "src", "Source", "", "")
	if fresh := d.FilterNew("src", []parser.Article{withScrape}); len(fresh) != 1 {
		t.Fatalf("article with valid scraped_at should pass, got %d", len(fresh))
	}
}

func TestMergeNewFirstAndIdempotent(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	existing := []parser.Article{article("https://example.com/old", "2024-01-10T00:00:00Z")}
	store.SaveArticles("src", existing)

	batch := []parser.Article{article("https://example.com/new", "2024-01-20T00:00:00Z")}

	merged := d.Merge("src", batch)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged articles, got %d", len(merged))
	}
	// 合并顺序契约：新的在前，旧的在后
	if merged[0].URL != "https://example.com/new" || merged[1].URL != "https://example.com/old" {
		t.Fatalf("merge order wrong: %q, %q", merged[0].URL, merged[1].URL)
	}
	store.SaveArticles("src", merged)

	// 同一批再合并一次，结果不变
	again := d.Merge("src", batch)
	if len(again) != len(merged) {
		t.Fatalf("merge not idempotent: %d vs %d", len(again), len(merged))
	}
}

func TestMergeSweepsDatelessExisting(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	existing := []parser.Article{
		article("https://example.com/ok", "2024-01-10T00:00:00Z"),
		{ID: "x", URL: "https://example.com/stale", PublishedDate: "1970-01-01"},
	}
	store.SaveArticles("src", existing)

	merged := d.Merge("src", nil)
	// 历史数据里的无日期记录在合并时一并清掉
	if len(merged) != 1 {
		t.Fatalf("expected 1 article after sweep, got %d", len(merged))
	}
	if merged[0].URL != "https://example.com/ok" {
		t.Fatalf("wrong article kept: %q", merged[0].URL)
	}
}

func TestDuplicateCountDoesNotMutateCache(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	store.SaveArticles("src", []parser.Article{article("https://example.com/known", "2024-01-10T00:00:00Z")})

	batch := []parser.Article{
		article("https://example.com/known", "2024-01-15T00:00:00Z"),
		article("https://example.com/fresh", "2024-01-15T00:00:00Z"),
	}

	if n := d.DuplicateCount("src", batch); n != 1 {
		t.Fatalf("duplicate count = %d, want 1", n)
	}
	// 纯查询不应把 fresh 写进缓存：再次过滤仍然放行
	if fresh := d.FilterNew("src", batch); len(fresh) != 1 || fresh[0].URL != "https://example.com/fresh" {
		t.Fatalf("DuplicateCount should not admit urls into the cache: %+v", fresh)
	}
}

func TestClearCacheReloadsFromStore(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	batch := []parser.Article{article("https://example.com/1", "2024-01-15T00:00:00Z")}
	if fresh := d.FilterNew("src", batch); len(fresh) != 1 {
		t.Fatalf("first pass should admit the article")
	}
	// 缓存认得这条 URL，但存储里并没有；失效缓存后重新加载，应再次放行
	d.ClearCache()
	if fresh := d.FilterNew("src", batch); len(fresh) != 1 {
		t.Fatalf("after ClearCache the url should be admitted again")
	}
}

func TestFeedScenarioNewVersusDuplicate(t *testing.T) {
	store := newTestStore(t)
	d := New(store)

	store.SaveArticles("feed", []parser.Article{article("https://example.com/seen", "2024-01-10T00:00:00Z")})

	batch := []parser.Article{
		article("https://example.com/seen", "2024-01-15T00:00:00Z"),
		article("https://example.com/unseen", "2024-01-15T00:00:00Z"),
	}

	if n := d.DuplicateCount("feed", batch); n != 1 {
		t.Fatalf("duplicate count = %d, want 1", n)
	}
	fresh := d.FilterNew("feed", batch)
	if len(fresh) != 1 || fresh[0].URL != "https://example.com/unseen" {
		t.Fatalf("filter new should return exactly the unseen url: %+v", fresh)
	}
}
