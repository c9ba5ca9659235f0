package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectdesk/internal/config"
	"projectdesk/internal/handler"
	"projectdesk/internal/httpserver"
	"projectdesk/internal/model"
	"projectdesk/internal/repository"
	"projectdesk/internal/repository/memory"
	"projectdesk/internal/service"
	"projectdesk/pkg/db"
	"projectdesk/pkg/logger"
	"projectdesk/pkg/mq"
)

type repositories struct {
	projects  service.Repository[model.Project]
	employees service.Repository[model.Employee]
	tasks     service.Repository[model.Task]
}

func main() {
	cfg := config.Load()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	log := logger.NewLogger(gin.Mode() == gin.DebugMode)
	defer log.Sync()

	log.Info("Starting projectdesk api...",
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.Bool("events_enabled", cfg.MQ.URL != ""),
	)

	deps := httpserver.Deps{Logger: log}

	// Storage
	var repos repositories
	switch cfg.DB.Driver {
	case "memory":
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewMemoryStorage()
		repos = repositories{store.Projects(), store.Employees(), store.Tasks()}
	default:
		dbConn, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			log.Fatal("Failed to init DB", zap.Error(err))
		}
		defer dbConn.Close()

		deps.DB = dbConn
		repos = repositories{
			repository.NewProjectRepository(dbConn, log),
			repository.NewEmployeeRepository(dbConn, log),
			repository.NewTaskRepository(dbConn, log),
		}
	}

	// Change events
	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.MQ.URL != "" {
		p, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Failed to init publisher", zap.Error(err))
		}
		defer p.Close()

		publisher = p
		deps.Broker = p
		log.Info("Publishing change events", zap.String("exchange", mq.ExchangeName))
	}

	projectService := service.NewProjectService(repos.projects, publisher, log)
	employeeService := service.NewEmployeeService(repos.employees, publisher, log)
	taskService := service.NewTaskService(repos.tasks, publisher, log)

	router := httpserver.NewRouter(httpserver.Handlers{
		Projects:  handler.NewProjectHandler(projectService, log),
		Employees: handler.NewEmployeeHandler(employeeService, log),
		Tasks:     handler.NewTaskHandler(taskService, log),
	}, deps)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 优雅退出处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("projectdesk api shutdown complete")
}
