package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article 统一的新闻记录结构，落盘文件与 API 输出共用同一套字段
type Article struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	SourceName    string `json:"source_name"`
	PublishedDate string `json:"published_date"`
	Summary       string `json:"summary"`
	ScrapedAt     string `json:"scraped_at"`
}

// 抓取时间戳格式：UTC、微秒精度，字符串排序即时间排序
const scrapedAtLayout = "2006-01-02T15:04:05.000000Z"

const idWidth = 16

// NewArticle 创建一条记录：ID 由 URL 推导，抓取时间只在此处赋值一次
func NewArticle(title, url, source, sourceName, publishedDate, summary string) Article {
	return Article{
		ID:            ArticleID(url),
		Title:         title,
		URL:           url,
		Source:        source,
		SourceName:    sourceName,
		PublishedDate: publishedDate,
		Summary:       summary,
		ScrapedAt:     time.Now().UTC().Format(scrapedAtLayout),
	}
}

// ArticleID 对 URL 做 sha256 后取前 16 位十六进制；同一 URL 永远得到同一 ID
func ArticleID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:idWidth]
}
