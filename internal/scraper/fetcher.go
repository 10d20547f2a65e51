package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/redis/go-redis/v9"
)

const (
	fetchCacheTTL   = time.Hour
	cacheKeyPrefix  = "scrape:cache:"
	redisOpTimeout  = time.Second
	redisPingWindow = 3 * time.Second
)

// Fetcher 负责原始内容的 HTTP 拉取：单次超时、失败即放弃，
// 可选挂一个 Redis 做一小时的内容缓存
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	redis     *redis.Client
}

func NewFetcher(userAgent string, timeout time.Duration, rdb *redis.Client) *Fetcher {
	if userAgent == "" {
		userAgent = "AI-News-Scraper/1.0"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{userAgent: userAgent, timeout: timeout, redis: rdb}
}

// NewCacheClient 连接 Redis 作为抓取缓存；连不上时返回 nil，抓取退化为不带缓存
func NewCacheClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingWindow)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed, fetch cache disabled: %v", err)
		return nil
	}
	return rdb
}

// Fetch 拉取一个 URL 的原始内容。失败只返回错误，由调用方决定跳过该源
func (f *Fetcher) Fetch(rawURL string) (string, error) {
	if body, ok := f.cacheGet(rawURL); ok {
		return body, nil
	}

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(f.timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(rawURL); err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("fetch %s: empty response", rawURL)
	}

	content := string(body)
	f.cacheSet(rawURL, content)
	return content, nil
}

func (f *Fetcher) cacheGet(url string) (string, bool) {
	if f.redis == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	body, err := f.redis.Get(ctx, cacheKey(url)).Result()
	if err != nil {
		return "", false
	}
	return body, true
}

func (f *Fetcher) cacheSet(url, content string) {
	if f.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := f.redis.Set(ctx, cacheKey(url), content, fetchCacheTTL).Err(); err != nil {
		log.Printf("fetcher: cache %s: %v", url, err)
	}
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
