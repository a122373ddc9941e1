package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	Engine *gin.Engine
	DB     *sql.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup SQLite
	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Opened database at %s", cfg.DBPath)

	// Setup Gin
	r := gin.Default()
	r.Use(permissiveCORS())

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(taskRepo, labelRepo)
	labelHandler := handler.NewLabelHandler(labelRepo)

	// Task routes
	api := r.Group("/api")
	{
		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)
		api.PUT("/tasks/:id/status", taskHandler.SetStatus)
		api.PUT("/tasks/:id/archive", taskHandler.SetArchived)
		api.PUT("/tasks/:id/time", taskHandler.SetTime)
		api.POST("/tasks/:id/comments", taskHandler.AddComment)
		api.POST("/tasks/:id/toggle-step", taskHandler.ToggleStep)

		// Label routes
		api.GET("/labels", labelHandler.List)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

// permissiveCORS mirrors the permissive policy of a personal instance:
// any origin may call the API.
func permissiveCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if err := s.DB.Close(); err != nil {
		log.Printf("⚠️  Failed to close database: %s", err)
	}

	log.Println("✅ Server exited properly")
}
