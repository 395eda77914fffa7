package main

import (
	"embed"
	"flag"
	"io/fs"
	"net/http"
	"os"

	"habitboard/internal/config"
	"habitboard/internal/handler"
	"habitboard/internal/logger"
	"habitboard/internal/metrics"
	"habitboard/internal/middleware"
	"habitboard/internal/service"
	"habitboard/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed dist/*
var staticFS embed.FS

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("store init failed", "err", err)
		os.Exit(1)
	}

	habitSvc := service.NewHabitService(st)
	habitH := handler.NewHabitHandler(habitSvc)
	healthH := handler.NewHealthHandler(st)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/health", healthH.Check)

	api := r.Group("/api", middleware.Session(cfg.Session))
	api.GET("/dashboard", habitH.Dashboard)
	api.POST("/habits", habitH.Create)
	api.POST("/habits/:habitId/entries", habitH.ToggleEntry)
	api.POST("/habits/:habitId/archive", habitH.Archive)

	distFS, _ := fs.Sub(staticFS, "dist")
	r.NoRoute(middleware.Session(cfg.Session), gin.WrapH(http.FileServer(http.FS(distFS))))

	logger.Info("server starting", "addr", cfg.Addr(), "driver", cfg.Database.Driver)
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server failed", "err", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Database.Driver == "memory" {
		return store.NewMem(), nil
	}
	db, err := cfg.OpenGormDB()
	if err != nil {
		return nil, err
	}
	return store.NewGorm(db)
}
