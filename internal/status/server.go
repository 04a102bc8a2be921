package status

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/gbhost/internal/bus"
	"github.com/danmuck/gbhost/internal/observability"
)

// Server exposes read-only bus state over HTTP: registered hosts, their
// interfaces and live connections, allocator occupancy, and prometheus
// metrics. It never mutates anything.
type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	hosts  []*bus.Host
	router *gin.Engine
}

func New(name, addr string, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Name:     name,
		Addr:     addr,
		Appeared: time.Now(),
		router:   r,
	}
	s.registerRoutes()
	return s
}

// AddHost makes a host visible to the status endpoints.
func (s *Server) AddHost(h *bus.Host) {
	s.hosts = append(s.hosts, h)
}

func (s *Server) Serve() error {
	log.Info().Str("addr", s.Addr).Msg("status server listening")
	return s.router.Run(s.Addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
