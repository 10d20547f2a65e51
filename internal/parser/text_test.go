package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello   world ", "hello world"},
		{"line\none\n\ttwo", "line one two"},
		{"", ""},
		{"   ", ""},
	}

	for _, c := range cases {
		if got := cleanText(c.in); got != c.want {
			t.Fatalf("cleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateSummaryAppendsEllipsis(t *testing.T) {
	long := strings.Repeat("word ", 100) // 500 字符，超出上限
	out := truncateSummary(long)

	if utf8.RuneCountInString(out) != summaryMaxLen {
		t.Fatalf("truncated summary length = %d, want %d", utf8.RuneCountInString(out), summaryMaxLen)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatalf("truncated summary should end with ellipsis: %q", out)
	}

	// 上限以内原样保留
	short := "a short summary"
	if got := truncateSummary(short); got != short {
		t.Fatalf("truncateSummary should keep short text unchanged: %q", got)
	}
}

func TestTruncateSummaryCountsRunes(t *testing.T) {
	// 多字节字符按 rune 截断，不能切出半个字符
	long := strings.Repeat("汉字测试内容", 100)
	out := truncateSummary(long)
	if !utf8.ValidString(out) {
		t.Fatalf("truncated summary contains invalid UTF-8: %q", out)
	}
	if utf8.RuneCountInString(out) != summaryMaxLen {
		t.Fatalf("rune count = %d, want %d", utf8.RuneCountInString(out), summaryMaxLen)
	}
}

func TestStripHTML(t *testing.T) {
	in := `<p>Hello <b>world</b></p><div>again</div>`
	got := stripHTML(in)
	if got != "Hello world again" {
		t.Fatalf("stripHTML(%q) = %q, want %q", in, got, "Hello world again")
	}
}
