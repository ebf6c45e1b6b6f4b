package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestlog/nestlog/internal/config"
	"github.com/nestlog/nestlog/internal/event"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"github.com/nestlog/nestlog/internal/observability"
	obsmiddleware "github.com/nestlog/nestlog/internal/observability/logger"
	obsmetrics "github.com/nestlog/nestlog/internal/observability/metrics"
	obstracing "github.com/nestlog/nestlog/internal/observability/tracing"
	"github.com/nestlog/nestlog/internal/report"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templatesFS embed.FS

var Module = fx.Module("http.server",
	event.Module,
	report.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Params struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Log       *zap.Logger
	DB        *gorm.DB
	EventSvc  eventdomain.Service
	ReportSvc reportdomain.Service
	Metrics   *obsmetrics.Metrics
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	log       *zap.Logger
	db        *gorm.DB
	eventSvc  eventdomain.Service
	reportSvc reportdomain.Service
	metrics   *obsmetrics.Metrics
}

func NewServer(p Params) *Server {
	return &Server{
		engine:    p.Engine,
		cfg:       p.Config,
		log:       p.Log.Named("server"),
		db:        p.DB,
		eventSvc:  p.EventSvc,
		reportSvc: p.ReportSvc,
		metrics:   p.Metrics,
	}
}

func registerRoutes(s *Server) {
	s.RegisterUIRoutes()
	s.RegisterAPIRoutes()
}

// RegisterUIRoutes wires the HTML form surface.
func (s *Server) RegisterUIRoutes() {
	s.engine.GET("/", s.IndexPage)
	s.engine.POST("/", s.IndexSubmit)
	s.engine.GET("/events", s.EventsPage)
	s.engine.POST("/events/delete/:id", s.EventsPageDelete)
}

// RegisterAPIRoutes wires the JSON surface.
func (s *Server) RegisterAPIRoutes() {
	v2 := s.engine.Group("/v2/events")
	v2.GET("", s.ListEvents)
	v2.POST("/add", s.AddEvent)
	v2.GET("/get/:id", s.GetEvent)
	v2.POST("/update/:id", s.UpdateEventType)
	v2.POST("/delete/:id", s.DeleteEvent)
	v2.GET("/day", s.DayEventDetails)
	v2.GET("/day/:type", s.DayEventDetails)
	v2.GET("/day/:type/:date", s.DayEventDetails)
	v2.GET("/daycounts", s.DayCounts)
	v2.GET("/daycounts/:date", s.DayCounts)
	v2.GET("/daywisecounts", s.DayWiseCounts)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
