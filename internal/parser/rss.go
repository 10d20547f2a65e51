package parser

import (
	"log"

	"github.com/mmcdole/gofeed"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
)

// RSSParser 解析 RSS/Atom 订阅源
type RSSParser struct {
	source     string
	sourceName string
}

func NewRSSParser(src config.Source) *RSSParser {
	name := src.DisplayName
	if name == "" {
		name = src.Name
	}
	return &RSSParser{source: src.Name, sourceName: name}
}

func (p *RSSParser) Parse(content string) []Article {
	feed, err := gofeed.NewParser().ParseString(content)
	if err != nil {
		log.Printf("rss: parse feed for %s: %v", p.source, err)
		return nil
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a, ok := p.parseItem(item)
		if !ok {
			continue
		}
		articles = append(articles, a)
	}
	return articles
}

// parseItem 标题和链接缺一不可，缺了直接跳过该条目
func (p *RSSParser) parseItem(item *gofeed.Item) (Article, bool) {
	if item == nil {
		return Article{}, false
	}
	title := cleanText(item.Title)
	if title == "" || item.Link == "" {
		return Article{}, false
	}

	summary := extractItemSummary(item)
	if summary != "" {
		summary = truncateSummary(summary)
	}

	return NewArticle(title, item.Link, p.source, p.sourceName, extractItemDate(item), summary), true
}

// extractItemDate 先用解析好的时间字段（published 优先于 updated），
// 再按同样顺序兜底原始字符串，第一个非空即生效
func extractItemDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format("2006-01-02T15:04:05Z")
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format("2006-01-02T15:04:05Z")
	}
	if item.Published != "" {
		return item.Published
	}
	if item.Updated != "" {
		return item.Updated
	}
	return ""
}

// extractItemSummary 摘要字段优先，其次正文块；取到什么都先剥掉标签
func extractItemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return stripHTML(item.Description)
	}
	if item.Content != "" {
		return stripHTML(item.Content)
	}
	return ""
}
