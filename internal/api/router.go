package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/dedup"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/parser"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scheduler"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/scraper"
	"github.com/kartikeyakotam-lab/AI-News-Scraper/internal/storage"
)

// Server 对外的查询接口，全部读存储层；/api/refresh 额外触发一轮后台抓取
type Server struct {
	store   *storage.Store
	scraper *scraper.Scraper
	dedup   *dedup.Deduplicator
	sched   *scheduler.Scheduler
}

func NewServer(store *storage.Store, sc *scraper.Scraper, d *dedup.Deduplicator, sched *scheduler.Scheduler) *Server {
	return &Server{store: store, scraper: sc, dedup: d, sched: sched}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/articles", s.listArticles)
		api.GET("/articles/:id", s.getArticle)
		api.GET("/sources", s.listSources)
		api.GET("/stats", s.getStats)
		api.POST("/refresh", s.refresh)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listArticles(c *gin.Context) {
	source := c.Query("source")
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	var articles []parser.Article
	if source != "" {
		articles = s.store.GetArticlesBySource(source, limit, offset)
	} else {
		articles = s.store.GetRecentArticles(limit, offset)
	}
	if articles == nil {
		articles = []parser.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
		"source":   source,
	})
}

func (s *Server) getArticle(c *gin.Context) {
	article, ok := s.store.GetArticleByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) listSources(c *gin.Context) {
	stats := s.store.GetStats()

	type sourceInfo struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	sources := make([]sourceInfo, 0)
	for _, name := range s.scraper.SourceNames() {
		sources = append(sources, sourceInfo{Name: name, Count: stats.Sources[name]})
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GetStats())
}

// refresh 后台触发一轮完整抓取；先失效 URL 缓存，存储可能被其它进程改过
func (s *Server) refresh(c *gin.Context) {
	go func() {
		s.dedup.ClearCache()
		s.sched.RunOnce()
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || v < 0 {
		return def
	}
	return v
}
