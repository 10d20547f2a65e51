package parser

import (
	"strings"
	"testing"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <link>https://example.com</link>
    <item>
      <title>  First   Article </title>
      <link>https://example.com/posts/first</link>
      <pubDate>Mon, 15 Jan 2024 10:00:00 GMT</pubDate>
      <description><![CDATA[<p>Hello <b>world</b>, this is the summary.</p>]]></description>
    </item>
    <item>
      <title>Entry without a link</title>
      <pubDate>Tue, 16 Jan 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Dateless entry</title>
      <link>https://example.com/posts/dateless</link>
    </item>
  </channel>
</rss>`

func rssSource() config.Source {
	return config.Source{
		Name:        "example_feed",
		DisplayName: "Example Feed",
		URL:         "https://example.com/rss.xml",
		Type:        "rss",
	}
}

func TestRSSParserExtractsEntries(t *testing.T) {
	articles := New(rssSource()).Parse(sampleFeed)

	// 缺链接的条目被跳过，其余照常解析
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "First Article" {
		t.Fatalf("title not normalized: %q", first.Title)
	}
	if first.URL != "https://example.com/posts/first" {
		t.Fatalf("unexpected url: %q", first.URL)
	}
	if first.Source != "example_feed" || first.SourceName != "Example Feed" {
		t.Fatalf("source fields wrong: %q / %q", first.Source, first.SourceName)
	}
	if first.PublishedDate != "2024-01-15T10:00:00Z" {
		t.Fatalf("published date = %q", first.PublishedDate)
	}
	if strings.ContainsAny(first.Summary, "<>") {
		t.Fatalf("summary should have markup stripped: %q", first.Summary)
	}
	if !strings.Contains(first.Summary, "Hello world") {
		t.Fatalf("summary text lost: %q", first.Summary)
	}
	if first.ID == "" || first.ScrapedAt == "" {
		t.Fatalf("id/scraped_at must be assigned at parse time")
	}
}

func TestRSSParserDatelessEntryKeepsEmptyDate(t *testing.T) {
	articles := New(rssSource()).Parse(sampleFeed)

	var dateless *Article
	for i := range articles {
		if articles[i].URL == "https://example.com/posts/dateless" {
			dateless = &articles[i]
		}
	}
	if dateless == nil {
		t.Fatalf("dateless entry should still be extracted")
	}
	if dateless.PublishedDate != "" {
		t.Fatalf("expected empty published date, got %q", dateless.PublishedDate)
	}
	if dateless.Summary != "" {
		t.Fatalf("expected empty summary, got %q", dateless.Summary)
	}
}

func TestRSSParserLongSummaryTruncated(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 60)
	feed := `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title>
<item><title>Long</title><link>https://example.com/long</link><description>` + long + `</description></item>
</channel></rss>`

	articles := New(config.Source{Name: "x", Type: "rss"}).Parse(feed)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if !strings.HasSuffix(articles[0].Summary, "...") {
		t.Fatalf("long summary should be truncated with ellipsis: %q", articles[0].Summary)
	}
}

func TestRSSParserMalformedFeed(t *testing.T) {
	articles := New(rssSource()).Parse("this is not xml at all")
	if len(articles) != 0 {
		t.Fatalf("malformed feed should yield no articles, got %d", len(articles))
	}
}
