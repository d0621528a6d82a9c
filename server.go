package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server refreshes the snapshot on a cron schedule and serves it over
// HTTP. The HTTP side only reads the finished artifact; a refresh that
// fails leaves the previous snapshot in place.
type Server struct {
	pipeline *Pipeline
	writer   *SnapshotWriter
	addr     string
	cronSpec string
}

// NewServer wires the serve-mode components.
func NewServer(pipeline *Pipeline, writer *SnapshotWriter, addr, cronSpec string) *Server {
	return &Server{
		pipeline: pipeline,
		writer:   writer,
		addr:     addr,
		cronSpec: cronSpec,
	}
}

// Run starts the refresh schedule and blocks serving HTTP.
func (s *Server) Run() error {
	c := cron.New()
	if _, err := c.AddFunc(s.cronSpec, s.refresh); err != nil {
		return err
	}
	c.Start()
	go s.refresh()

	log.Printf("Serving snapshot on %s (refresh %q)", s.addr, s.cronSpec)
	return s.router().Run(s.addr)
}

func (s *Server) refresh() {
	log.Printf("→ Refreshing snapshot...")
	items := s.pipeline.Run(context.Background())
	if err := s.writer.Write(items); err != nil {
		log.Printf("✗ Snapshot write failed: %v", err)
		return
	}
	log.Printf("✓ Snapshot updated: %d items", len(items))
}

func (s *Server) router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/feed.json", func(c *gin.Context) {
		if _, err := os.Stat(s.writer.Path()); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not available yet"})
			return
		}
		c.File(s.writer.Path())
	})

	return r
}
