// Package devserver is an in-memory stub of the Loopa transcription API for
// offline development of the client. It speaks the same wire contract,
// including the Cyrillic status literals, but fabricates transcripts.
package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config represents dev server configuration.
type Config struct {
	Addr            string
	ProcessingAfter time.Duration
	DoneAfter       time.Duration
}

// Server wires the stub store into a gin router.
type Server struct {
	config Config
	store  *Store
	router *gin.Engine
	logger *zap.Logger
}

// NewServer creates the dev server with defaults filled in.
func NewServer(config Config, logger *zap.Logger) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.ProcessingAfter == 0 {
		config.ProcessingAfter = 2 * time.Second
	}
	if config.DoneAfter == 0 {
		config.DoneAfter = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: config,
		store:  NewStore(config.ProcessingAfter, config.DoneAfter),
		router: router,
		logger: logger,
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	router.Use(metrics.Middleware())
	router.Use(s.requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/uploads", s.handleUpload)
		apiGroup.GET("/tasks/:id", s.handleGetTask)
		apiGroup.GET("/tasks/:id/segments", s.handleGetSegments)
		apiGroup.PUT("/tasks/:id/segments/:segId", s.handleUpdateSegment)
		apiGroup.PUT("/tasks/:id/speakers/:speakerId", s.handleUpdateSpeaker)
		apiGroup.GET("/tasks/:id/audio", s.handleGetAudio)
		apiGroup.GET("/tasks/:id/export", s.handleExport)
		apiGroup.GET("/history", s.handleHistory)
		apiGroup.DELETE("/tasks/:id", s.handleDeleteTask)

		apiGroup.POST("/projects", s.handleCreateProject)
		apiGroup.GET("/projects", s.handleListProjects)
		apiGroup.GET("/projects/:id", s.handleGetProject)
		apiGroup.GET("/projects/:id/files", s.handleListProjectFiles)
		apiGroup.DELETE("/projects/:id", s.handleDeleteProject)
	}

	return s
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("dev server listening",
		zap.String("addr", s.config.Addr),
		zap.Duration("processing_after", s.config.ProcessingAfter),
		zap.Duration("done_after", s.config.DoneAfter))
	return s.router.Run(s.config.Addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	projectID := c.PostForm("projectId")
	if projectID != "" {
		if _, ok := s.store.Project(projectID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project not found"})
			return
		}
	}
	taskID := s.store.CreateTask(file.Filename, projectID)
	c.JSON(http.StatusOK, gin.H{"taskId": taskID})
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, ok := s.store.Task(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleGetSegments(c *gin.Context) {
	segments, ok := s.store.Segments(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, segments)
}

func (s *Server) handleUpdateSegment(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if !s.store.UpdateSegmentText(c.Param("id"), c.Param("segId"), req.Text) {
		c.JSON(http.StatusNotFound, gin.H{"error": "segment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUpdateSpeaker(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if !s.store.UpdateSpeakerName(c.Param("id"), c.Param("speakerId"), req.Name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "speaker not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetAudio(c *gin.Context) {
	if _, ok := s.store.Task(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	// One second of silent 8kHz mono WAV; enough for a player to bind to.
	c.Data(http.StatusOK, "audio/wav", silentWAV())
}

func (s *Server) handleExport(c *gin.Context) {
	format := c.Query("format")
	if format != "txt" && format != "docx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
		return
	}
	task, ok := s.store.Task(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if !task.Status.IsSuccess() {
		c.JSON(http.StatusConflict, gin.H{"error": "task is not finished"})
		return
	}
	filename := fmt.Sprintf("%s.%s", task.OriginalName, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", []byte(task.Transcript()))
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.History())
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if !s.store.DeleteTask(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	c.JSON(http.StatusCreated, s.store.CreateProject(req.Name, description))
}

func (s *Server) handleListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Projects())
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, ok := s.store.Project(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleListProjectFiles(c *gin.Context) {
	items, ok := s.store.ProjectFiles(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if !s.store.DeleteProject(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// silentWAV builds a minimal valid WAV blob.
func silentWAV() []byte {
	const sampleRate = 8000
	data := make([]byte, sampleRate*2)
	header := []byte("RIFF\x00\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x40\x1f\x00\x00\x80\x3e\x00\x00\x02\x00\x10\x00data\x00\x00\x00\x00")
	blob := append(header, data...)
	size := uint32(len(blob) - 8)
	blob[4] = byte(size)
	blob[5] = byte(size >> 8)
	blob[6] = byte(size >> 16)
	blob[7] = byte(size >> 24)
	dataSize := uint32(len(data))
	blob[40] = byte(dataSize)
	blob[41] = byte(dataSize >> 8)
	blob[42] = byte(dataSize >> 16)
	blob[43] = byte(dataSize >> 24)
	return blob
}
