package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/parser"
)

// 汇总文件名，重建汇总时要把它自己排除在扫描之外
const combinedFileName = "all_articles.json"

// Store 文章的 JSON 文件存储：每个源一个文件，外加一个全局去重、
// 按抓取时间倒序的汇总文件。读失败一律降级为空列表，不向上抛
type Store struct {
	dataDir string
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

func (s *Store) sourceFile(source string) string {
	return filepath.Join(s.dataDir, source+".json")
}

func (s *Store) combinedFile() string {
	return filepath.Join(s.dataDir, combinedFileName)
}

// sourceKeys 列出所有按源存储的文件名（去掉扩展名），固定按字典序，
// 保证汇总重建时“先出现者胜”的结果跨平台一致
func (s *Store) sourceKeys() []string {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		log.Printf("storage: list %s: %v", s.dataDir, err)
		return nil
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == combinedFileName {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) readFile(path string) ([]parser.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var articles []parser.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// LoadArticles 读取某个源的全部文章；文件不存在或损坏时返回空列表
func (s *Store) LoadArticles(source string) []parser.Article {
	path := s.sourceFile(source)
	articles, err := s.readFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("storage: load %s: %v", path, err)
		}
		return nil
	}
	return articles
}

// SaveArticles 整体写入某个源的文章列表，保持传入顺序不变。
// 返回写入条数，失败时记日志并返回 0，旧文件保持原样
func (s *Store) SaveArticles(source string, articles []parser.Article) int {
	path := s.sourceFile(source)
	if err := writeFileAtomic(path, articles); err != nil {
		log.Printf("storage: save %s: %v", path, err)
		return 0
	}
	log.Printf("storage: saved %d articles to %s", len(articles), path)
	return len(articles)
}

// writeFileAtomic 先写同目录临时文件再一次性重命名覆盖目标，
// 中途崩溃最多留下一个临时文件，目标文件不会出现半截内容
func writeFileAtomic(path string, articles []parser.Article) error {
	if articles == nil {
		articles = []parser.Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// UpdateCombinedFile 扫描全部按源文件重建汇总：按 ID 去重（先出现者胜），
// 再按抓取时间倒序排序后原子写入。返回汇总后的总条数，写失败返回 0
func (s *Store) UpdateCombinedFile() int {
	var all []parser.Article
	seen := make(map[string]struct{})

	for _, key := range s.sourceKeys() {
		for _, a := range s.LoadArticles(key) {
			if a.ID == "" {
				continue
			}
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			all = append(all, a)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ScrapedAt > all[j].ScrapedAt
	})

	if err := writeFileAtomic(s.combinedFile(), all); err != nil {
		log.Printf("storage: update combined file: %v", err)
		return 0
	}
	log.Printf("storage: combined file updated, %d articles", len(all))
	return len(all)
}

// LoadAllArticles 优先读汇总文件；没有或坏了就退回逐个拼接按源文件（不去重）
func (s *Store) LoadAllArticles() []parser.Article {
	articles, err := s.readFile(s.combinedFile())
	if err == nil {
		return articles
	}
	if !os.IsNotExist(err) {
		log.Printf("storage: load combined file: %v", err)
	}

	var all []parser.Article
	for _, key := range s.sourceKeys() {
		all = append(all, s.LoadArticles(key)...)
	}
	return all
}

// GetArticleByID 线性扫描全量文章找 ID
func (s *Store) GetArticleByID(id string) (parser.Article, bool) {
	for _, a := range s.LoadAllArticles() {
		if a.ID == id {
			return a, true
		}
	}
	return parser.Article{}, false
}

// GetArticlesBySource 按源分页查询
func (s *Store) GetArticlesBySource(source string, limit, offset int) []parser.Article {
	return page(s.LoadArticles(source), limit, offset)
}

// GetRecentArticles 跨源分页查询，顺序即汇总文件的抓取时间倒序
func (s *Store) GetRecentArticles(limit, offset int) []parser.Article {
	return page(s.LoadAllArticles(), limit, offset)
}

func page(articles []parser.Article, limit, offset int) []parser.Article {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(articles) {
		return nil
	}
	articles = articles[offset:]
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

// Stats 存储概况
type Stats struct {
	TotalArticles int            `json:"total_articles"`
	Sources       map[string]int `json:"sources"`
	LastUpdated   string         `json:"last_updated"`
}

// GetStats 统计各源条数、总条数以及最近一次抓取时间；
// 解析失败的文件直接跳过，不按 0 条计入
func (s *Store) GetStats() Stats {
	stats := Stats{Sources: make(map[string]int)}

	for _, key := range s.sourceKeys() {
		articles, err := s.readFile(s.sourceFile(key))
		if err != nil {
			continue
		}
		stats.Sources[key] = len(articles)
		stats.TotalArticles += len(articles)
		for _, a := range articles {
			if a.ScrapedAt > stats.LastUpdated {
				stats.LastUpdated = a.ScrapedAt
			}
		}
	}
	return stats
}
