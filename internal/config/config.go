package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 进程级运行参数，全部来自环境变量
type Config struct {
	AppPort     string
	DataDir     string
	RedisAddr   string
	CronSpec    string
	SourcesPath string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "8000"),
		DataDir:     getEnv("DATA_DIR", "data/articles"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CronSpec:    getEnv("CRON_SPEC", "0 */4 * * *"),
		SourcesPath: getEnv("SOURCES_CONFIG", "config/sources.yaml"),
	}

	log.Printf("config loaded: port=%s data=%s cron=%q", cfg.AppPort, cfg.DataDir, cfg.CronSpec)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Selectors HTML 源的 CSS 选择器提示，留空则使用解析器内置的兜底链
type Selectors struct {
	ArticleList string `yaml:"article_list"`
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Date        string `yaml:"date"`
	Summary     string `yaml:"summary"`
}

// Source 一个抓取源的配置项
type Source struct {
	Name             string    `yaml:"name"`
	DisplayName      string    `yaml:"display_name"`
	URL              string    `yaml:"url"`
	Type             string    `yaml:"type"` // rss / html
	Selectors        Selectors `yaml:"selectors"`
	RateLimitSeconds int       `yaml:"rate_limit_seconds"`
	MaxArticles      int       `yaml:"max_articles"`
}

// Defaults 各源未单独配置时的公共缺省值
type Defaults struct {
	UserAgent            string `yaml:"user_agent"`
	RequestTimeout       int    `yaml:"request_timeout"`
	MaxArticlesPerSource int    `yaml:"max_articles_per_source"`
}

// SourcesConfig sources.yaml 的顶层结构
type SourcesConfig struct {
	Defaults Defaults `yaml:"defaults"`
	Sources  []Source `yaml:"sources"`
}

// LoadSources 从 YAML 文件加载抓取源清单并补齐缺省值
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *SourcesConfig) applyDefaults() {
	if c.Defaults.UserAgent == "" {
		c.Defaults.UserAgent = "AI-News-Scraper/1.0"
	}
	if c.Defaults.RequestTimeout <= 0 {
		c.Defaults.RequestTimeout = 30
	}
	if c.Defaults.MaxArticlesPerSource <= 0 {
		c.Defaults.MaxArticlesPerSource = 50
	}
}
