package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/priority-items/internal/handler"
	appmw "github.com/shinyyama/priority-items/internal/middleware"
	"github.com/shinyyama/priority-items/internal/repository"
	"github.com/shinyyama/priority-items/internal/service"
	"github.com/shinyyama/priority-items/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	StaticDir string
	GitSHA    string
	BuildTime string
}

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

// New wires repositories, services and handlers around db. The priority
// catalog must already be seeded.
func New(db *gorm.DB, log *zap.Logger, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(appmw.AccessLog(log))

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo)
	itemHandler := handler.NewItemHandler(itemSvc, log)

	priorityRepo := repository.NewPriorityRepository(db)
	prioritySvc := service.NewPriorityService(priorityRepo)
	priorityHandler := handler.NewPriorityHandler(prioritySvc, log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    opts.GitSHA,
			"build_time": opts.BuildTime,
		})
	})

	e.GET("/items", itemHandler.List)
	e.POST("/items", itemHandler.Create)
	e.GET("/items/:id", itemHandler.Get)
	e.PUT("/items/:id", itemHandler.Update)
	e.DELETE("/items/:id", itemHandler.Delete)
	e.GET("/priorities", priorityHandler.List)

	// registered last; the router prefers the static /items routes over /*
	if opts.StaticDir != "" {
		e.Static("/", opts.StaticDir)
	}

	return &Server{e: e, log: log}
}

func (s *Server) Start(addr string) error {
	s.log.Info("starting server", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
