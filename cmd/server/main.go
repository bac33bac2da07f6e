package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/docqa/frontend/internal/api"
	"github.com/docqa/frontend/internal/backend"
	"github.com/docqa/frontend/internal/config"
	"github.com/docqa/frontend/internal/docs"
	"github.com/docqa/frontend/internal/upload"
	"github.com/docqa/frontend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Local development convenience; absence is fine.
	_ = godotenv.Load()

	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}

	configPath := filepath.Join(filepath.Dir(exePath), "pdfqa.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	client := backend.NewClient(cfg.Backend.BaseURL)
	docsMgr := docs.NewManager()
	uploadMgr := upload.NewManager(client, docsMgr.Add)

	// Drop finished upload jobs after the retention window.
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Backend.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			uploadMgr.CleanupOldJobs(time.Duration(cfg.Backend.JobRetentionMinutes) * time.Minute)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/api/health" ||
				strings.HasSuffix(path, "/events") ||
				strings.HasPrefix(path, "/static/")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	handlers := api.NewHandlers(&api.Dependencies{
		API:     client,
		Docs:    docsMgr,
		Uploads: uploadMgr,
		Version: Version,
	})
	api.RegisterRoutes(e, handlers)

	if err := web.RegisterStaticRoutes(e); err != nil {
		fmt.Printf("Warning: failed to register static routes: %v\n", err)
	}

	// WriteTimeout stays unset: the SSE and websocket endpoints hold their
	// response open for the lifetime of an upload.
	s := &http.Server{
		Addr:        cfg.GetServerAddr(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("PDF QA front end %s (built %s)\n", Version, BuildTime)
	fmt.Printf("  Config:  %s\n", configPath)
	fmt.Printf("  Backend: %s\n", cfg.Backend.BaseURL)
	fmt.Printf("  Listen:  http://%s\n", cfg.GetServerAddr())

	e.Logger.Fatal(e.StartServer(s))
}
