package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 摘要长度上限（按 rune 计），超出后截断并补省略号
const summaryMaxLen = 300

// cleanText 把连续空白压缩成单个空格并去掉首尾空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateSummary 摘要超长时按 rune 截断，避免把多字节字符切成半个
func truncateSummary(s string) string {
	s = cleanText(s)
	rs := []rune(s)
	if len(rs) <= summaryMaxLen {
		return s
	}
	return string(rs[:summaryMaxLen-3]) + "..."
}

// stripHTML 去掉富文本标签只留纯文本；解析失败时退回原始字符串的空白清理。
// 先在标签前补一个空格，相邻块级元素的文字才不会粘在一起
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}
