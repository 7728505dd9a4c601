package web

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"codeplan/internal/logging"
	"codeplan/internal/ports"
)

// Server serves the JSON API for one backlog folder
type Server struct {
	repo   ports.BacklogStore
	index  ports.ItemIndex // nil disables search
	dir    string
	logger *log.Logger
	router *gin.Engine
}

// Option configures the Server
type Option func(*Server)

// WithIndex enables /api/search backed by index. The caller opens and closes it.
func WithIndex(index ports.ItemIndex) Option {
	return func(s *Server) {
		s.index = index
	}
}

// WithLogger sets the request logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new web server for the backlog folder dir
func NewServer(repo ports.BacklogStore, dir string, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		dir:    dir,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())
	s.router = router

	api := router.Group("/api")
	{
		api.GET("/backlog", s.handleBacklog)
		api.GET("/archived", s.handleArchived)
		api.GET("/context", s.handleContext)
		api.GET("/search", s.handleSearch)
		api.POST("/archive-done", s.handleArchiveDone)

		api.POST("/items", s.handleCreate)
		api.GET("/items/:id", s.handleItem)
		api.PATCH("/items/:id", s.handleUpdate)
		api.DELETE("/items/:id", s.handleDelete)
		api.PUT("/items/:id/status", s.handleStatus)
		api.POST("/items/:id/archive", s.handleArchive)
		api.POST("/items/:id/restore", s.handleRestore)
	}

	return s
}

// Handler exposes the router, for http.Server and tests
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	s.logger.Info("serving backlog", "dir", s.dir, "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
