package http

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Apply security headers to all responses
	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flash FlashStore
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
		flash = cfg.Sessions
	}

	if cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.InjectContext())
		router.Use(cfg.ReadOnly.Handler())
	}

	tmpl, err := LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	if info, err := os.Stat(cfg.StaticPath); cfg.StaticPath != "" && err == nil && info.IsDir() {
		router.Static("/static", cfg.StaticPath)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	uiController := NewUIController(cfg.Store, cfg.Auditor, flash)
	booksController := NewBooksController(cfg.Store, cfg.Stats, cfg.History)
	exportController := NewExportController(cfg.Store)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// UI routes
	router.GET("/", uiController.Index)
	router.POST("/", uiController.IndexPost)
	router.GET("/update/:id", uiController.EditPage)
	router.POST("/update/:id", uiController.EditPost)
	router.GET("/export", exportController.DownloadMarkdown)

	// Books API endpoints
	router.GET("/api/books", booksController.GetBooks)
	router.GET("/api/books/stats", booksController.GetBookStats)
	router.GET("/api/books/:id", booksController.GetBook)
	router.GET("/api/books/:id/history", booksController.GetBookHistory)

	if cfg.AuditEvents != nil {
		auditController := NewAuditController(cfg.AuditEvents)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.TaskConfig)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router, nil
}
