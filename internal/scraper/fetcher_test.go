package scraper

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetcherReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "test-agent") {
			t.Errorf("unexpected user agent: %q", ua)
		}
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	f := NewFetcher("test-agent/1.0", 5*time.Second, nil)
	body, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if body != "<html>hello</html>" {
		t.Fatalf("body = %q", body)
	}
}

func TestFetcherHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher("", 5*time.Second, nil)
	if _, err := f.Fetch(srv.URL); err == nil {
		t.Fatalf("expected error on 404")
	}
}

func TestFetcherRevisitsSameURL(t *testing.T) {
	// 同一个 URL 周期性重复抓取是常态，第二次访问不能被去重掉
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher("", 5*time.Second, nil)
	for i := 0; i < 2; i++ {
		if _, err := f.Fetch(srv.URL); err != nil {
			t.Fatalf("fetch %d error: %v", i, err)
		}
	}
	if hits != 2 {
		t.Fatalf("expected 2 hits without cache, got %d", hits)
	}
}

func TestFetcherUnreachableHost(t *testing.T) {
	f := NewFetcher("", time.Second, nil)
	if _, err := f.Fetch("http://127.0.0.1:1/none"); err == nil {
		t.Fatalf("expected connection error")
	}
}
