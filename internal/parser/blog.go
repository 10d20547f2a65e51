package parser

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/config"
)

// BlogParser 基于 CSS 选择器解析 HTML 博客列表页
type BlogParser struct {
	source     string
	sourceName string
	selectors  config.Selectors
	baseURL    *url.URL
}

// 主选择器落空时按顺序兜底的通用容器模式
var fallbackContainerSelectors = []string{
	"article",
	`[class*="post"]`,
	`[class*="article"]`,
	`[class*="card"]`,
	`[class*="entry"]`,
	`[class*="news-item"]`,
	".blog-post",
	".post-item",
}

// 容器全文里扫描日期用的兜底正则：月名在前、日在前、ISO、斜线数字
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
}

var dateAttrs = []string{"datetime", "data-date", "data-published", "data-time"}

func NewBlogParser(src config.Source) *BlogParser {
	name := src.DisplayName
	if name == "" {
		name = src.Name
	}
	base, err := url.Parse(src.URL)
	if err != nil {
		log.Printf("blog: invalid base url for %s: %v", src.Name, err)
		base = nil
	}
	return &BlogParser{
		source:     src.Name,
		sourceName: name,
		selectors:  src.Selectors,
		baseURL:    base,
	}
}

func (p *BlogParser) Parse(content string) []Article {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		log.Printf("blog: parse html for %s: %v", p.source, err)
		return nil
	}

	sel := p.selectors.ArticleList
	if sel == "" {
		sel = "article"
	}
	containers := doc.Find(sel)
	if containers.Length() == 0 {
		containers = findArticleContainers(doc)
	}

	articles := make([]Article, 0, containers.Length())
	containers.Each(func(_ int, el *goquery.Selection) {
		a, ok := p.parseContainer(el)
		if ok {
			articles = append(articles, a)
		}
	})
	return articles
}

// findArticleContainers 主选择器没命中时逐个尝试通用模式，第一个有结果的生效
func findArticleContainers(doc *goquery.Document) *goquery.Selection {
	for _, pattern := range fallbackContainerSelectors {
		if els := doc.Find(pattern); els.Length() > 0 {
			return els
		}
	}
	return doc.Find("article")
}

// parseContainer 标题或链接取不到就放弃该容器；日期和摘要是可选的
func (p *BlogParser) parseContainer(el *goquery.Selection) (Article, bool) {
	title := p.extractTitle(el)
	if title == "" {
		return Article{}, false
	}

	link := p.extractLink(el)
	if link == "" {
		return Article{}, false
	}
	link = p.resolveURL(link)
	if link == "" {
		return Article{}, false
	}

	summary := p.extractSummary(el)
	if summary != "" {
		summary = truncateSummary(summary)
	}

	return NewArticle(title, link, p.source, p.sourceName, p.extractDate(el), summary), true
}

// extractTitle 配置的选择器 → 第一个标题标签 → 第一个链接的文本
func (p *BlogParser) extractTitle(el *goquery.Selection) string {
	sel := p.selectors.Title
	if sel == "" {
		sel = `h1, h2, h3, [class*="title"]`
	}
	if t := el.Find(sel).First(); t.Length() > 0 {
		if text := cleanText(t.Text()); text != "" {
			return text
		}
	}

	for _, tag := range []string{"h1", "h2", "h3", "h4"} {
		if h := el.Find(tag).First(); h.Length() > 0 {
			return cleanText(h.Text())
		}
	}

	if a := el.Find("a").First(); a.Length() > 0 {
		return cleanText(a.Text())
	}
	return ""
}

// extractLink 优先取标题里嵌的链接；锚点和 javascript: 伪链接不算数
func (p *BlogParser) extractLink(el *goquery.Selection) string {
	titleSel := p.selectors.Title
	if titleSel == "" {
		titleSel = "h1, h2, h3"
	}
	if t := el.Find(titleSel).First(); t.Length() > 0 {
		if href, ok := t.Find("a").First().Attr("href"); ok && href != "" {
			return href
		}
	}

	linkSel := p.selectors.Link
	if linkSel == "" {
		linkSel = "a"
	}
	if href, ok := el.Find(linkSel).First().Attr("href"); ok && href != "" {
		if !strings.HasPrefix(href, "#") && !strings.HasPrefix(href, "javascript:") {
			return href
		}
	}
	return ""
}

// resolveURL 把相对链接解析成基于源地址的绝对链接
func (p *BlogParser) resolveURL(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if p.baseURL == nil {
		return ref.String()
	}
	return p.baseURL.ResolveReference(ref).String()
}

// extractDate 四层兜底：time 标签属性 → 配置的选择器 → 日期类属性 → 全文正则
func (p *BlogParser) extractDate(el *goquery.Selection) string {
	if t := el.Find("time").First(); t.Length() > 0 {
		if dt, ok := t.Attr("datetime"); ok && dt != "" {
			return normalizeDate(dt)
		}
	}

	sel := p.selectors.Date
	if sel == "" {
		sel = `time, [class*="date"], [datetime]`
	}
	if d := el.Find(sel).First(); d.Length() > 0 {
		if dt, ok := d.Attr("datetime"); ok && dt != "" {
			return normalizeDate(dt)
		}
		if text := cleanText(d.Text()); text != "" {
			if normalized := normalizeDate(text); normalized != "" {
				return normalized
			}
		}
	}

	for _, attr := range dateAttrs {
		if carrier := el.Find("[" + attr + "]").First(); carrier.Length() > 0 {
			v, _ := carrier.Attr(attr)
			return normalizeDate(v)
		}
	}

	// 最后在容器全文里扫日期模式，属于尽力而为的启发式
	text := el.Text()
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return normalizeDate(m)
		}
	}
	return ""
}

// extractSummary 配置的选择器文本要超过短文本下限才算数，
// 否则找第一个内容足够长的段落
func (p *BlogParser) extractSummary(el *goquery.Selection) string {
	sel := p.selectors.Summary
	if sel == "" {
		sel = `p, [class*="description"], [class*="excerpt"]`
	}
	if s := el.Find(sel).First(); s.Length() > 0 {
		if text := cleanText(s.Text()); utf8.RuneCountInString(text) > 20 {
			return text
		}
	}

	var summary string
	el.Find("p").EachWithBreak(func(_ int, para *goquery.Selection) bool {
		if text := cleanText(para.Text()); utf8.RuneCountInString(text) > 50 {
			summary = text
			return false
		}
		return true
	})
	return summary
}
