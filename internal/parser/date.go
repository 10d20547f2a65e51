package parser

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	ordinalRe   = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
)

// 依次尝试的日历格式：完整/缩写月名、日月两种顺序、斜线分隔的数字写法
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
}

var monthTokens = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// normalizeDate 尽力把各种日期写法统一成 ISO 零点时间戳。
// 已经是 ISO 前缀的原样返回；全部格式都解析失败、但字符串里仍带月份单词时，
// 原样返回做尽力而为的保留，其余情况返回空串。
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isoPrefixRe.MatchString(s) {
		return s
	}

	s = cleanText(s)
	// 去掉英文序数词后缀，例如 "1st" -> "1"
	s = ordinalRe.ReplaceAllString(s, "$1")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02T00:00:00Z")
		}
	}

	lower := strings.ToLower(s)
	for _, m := range monthTokens {
		if strings.Contains(lower, m) {
			return s
		}
	}
	return ""
}
