// Package httpapi serves the run history over HTTP with gin.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// Server exposes read-only endpoints over the report use case.
type Server struct {
	Reports *report.UseCase
	Logger  logging.Logger
}

// NewServer returns a server for uc. A nil logger discards request logs.
func NewServer(uc *report.UseCase, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{Reports: uc, Logger: logger}
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog(), gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", s.health)
	v1 := r.Group("/v1")
	{
		v1.GET("/runs", s.listRuns)
		v1.GET("/runs/:id", s.getRun)
		v1.GET("/runs/:id/report", s.getRunReport)
	}
	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).String())
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listRuns(c *gin.Context) {
	in := &report.ListInput{Task: c.Query("task")}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		in.Limit = n
	}
	out, err := s.Reports.List(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRun(c *gin.Context) {
	out, err := s.Reports.Get(c.Request.Context(), &report.GetInput{ID: c.Param("id")})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Run)
}

func (s *Server) getRunReport(c *gin.Context) {
	out, err := s.Reports.Get(c.Request.Context(), &report.GetInput{ID: c.Param("id")})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.String(http.StatusOK, report.Render(out.Run))
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrRunNotFound) {
		status = http.StatusNotFound
	}
	if status >= 500 {
		s.Logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
