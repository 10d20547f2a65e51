package parser

import (
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
)

// Parser 抓取到的原始内容进、文章列表出；单条解析失败只跳过那一条
type Parser interface {
	Parse(content string) []Article
}

// New 按源类型选择解析器：rss 走订阅源解析，其余一律按 HTML 博客页处理
func New(src config.Source) Parser {
	if src.Type == "rss" {
		return NewRSSParser(src)
	}
	return NewBlogParser(src)
}
