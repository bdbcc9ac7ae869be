package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huddle-api/config"
	"huddle-api/internal/handler"
	"huddle-api/internal/middleware"
	"huddle-api/internal/transport/httpdto"
	"huddle-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Projects  *handler.ResourceHandler
	Chatrooms *handler.ResourceHandler
}

// Dependencies are the collaborators the routes need besides the handlers.
// Limiter may be nil to disable write rate limiting.
type Dependencies struct {
	Auth    middleware.TokenParser
	Limiter middleware.WriteLimiter
	Health  func(ctx context.Context) error
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, deps Dependencies) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.ClientOrigin))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health(c.Request.Context()); err != nil {
				if s.logger != nil {
					s.logger.Warnf("health check failed: %s", err)
				}
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("dependency unavailable", "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	requireToken := middleware.AuthMiddleware(deps.Auth)
	updateAuth := middleware.OptionalAuthMiddleware(deps.Auth)
	if s.config.RequireAuthOnUpdate {
		updateAuth = requireToken
	}

	var limit []gin.HandlerFunc
	if deps.Limiter != nil {
		limit = append(limit, middleware.WriteRateLimitMiddleware(deps.Limiter, s.logger))
	}
	write := func(auth gin.HandlerFunc, h ...gin.HandlerFunc) []gin.HandlerFunc {
		chain := append([]gin.HandlerFunc{auth}, limit...)
		return append(chain, h...)
	}

	projects := s.engine.Group("/projects")
	{
		projects.GET("", requireToken, handlers.Projects.Index)
		projects.GET("/:id", requireToken, handlers.Projects.Show)
		projects.POST("", write(requireToken, handlers.Projects.Create)...)
		projects.PATCH("/:id", write(updateAuth, middleware.RemoveBlanksMiddleware(), handlers.Projects.Update)...)
		projects.DELETE("/:id", write(requireToken, handlers.Projects.Destroy)...)
	}

	chatrooms := s.engine.Group("/chatrooms")
	{
		chatrooms.GET("", requireToken, handlers.Chatrooms.Index)
		chatrooms.GET("/:id", requireToken, handlers.Chatrooms.Show)
		chatrooms.POST("", write(requireToken, handlers.Chatrooms.Create)...)
		chatrooms.PATCH("/:id", write(updateAuth, middleware.RemoveBlanksMiddleware(), handlers.Chatrooms.Update)...)
		chatrooms.DELETE("/:id", write(requireToken, handlers.Chatrooms.Destroy)...)
	}

	// Chatroom deletion was first published under /games/:id; keep it for existing clients.
	s.engine.DELETE("/games/:id", write(requireToken, handlers.Chatrooms.Destroy)...)
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
