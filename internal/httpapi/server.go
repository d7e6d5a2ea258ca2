// Package httpapi is the chi-based HTTP transport surface of spec §6,
// grounded on the teacher's internal/server package: Recoverer/RequestID/
// RealIP/logging/Timeout middleware stack, cors.Handler, and one
// RegisterRoutes(chi.Router) method per resource group.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/httpapi/progress"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
	"github.com/prabhnoor12/cleardeal-ai/internal/scan"
)

// Server wraps the chi router and its collaborators.
type Server struct {
	router *chi.Mux
	log    zerolog.Logger
}

// Deps bundles the collaborators routed to by the HTTP surface.
type Deps struct {
	Orchestrator *analysis.Orchestrator
	History      *riskhistory.Store
	Scores       domain.RiskScoreRepo
	ScanDriver   *scan.Driver
	Events       *events.Manager
	DevMode      bool
}

// NewServer builds and wires the HTTP router.
func NewServer(deps Deps, log zerolog.Logger) *Server {
	s := &Server{router: chi.NewRouter(), log: log.With().Str("component", "httpapi").Logger()}
	s.setupMiddleware(deps.DevMode)
	s.setupRoutes(deps)
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes(deps Deps) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		NewAnalysisHandler(deps.Orchestrator, deps.History, s.log).RegisterRoutes(r)
		NewScoreHandler(deps.Scores, s.log).RegisterRoutes(r)
		NewStateRulesHandler(s.log).RegisterRoutes(r)
		r.Get("/states", ListSupportedStates(s.log))
		NewScanHandler(deps.ScanDriver, s.log).RegisterRoutes(r)
		progress.NewBridge(deps.Events, s.log).RegisterRoutes(r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPct, memPct := s.systemStats()
	writeData(w, s.log, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"cpuPercent": cpuPct,
		"memPercent": memPct,
	})
}

// systemStats reports instantaneous CPU and RAM usage percentages, using a
// short sampling window so the health check stays fast.
func (s *Server) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to get cpu percentage")
		cpuPercent = []float64{0}
	}
	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to get memory statistics")
		return cpuAvg, 0
	}
	return cpuAvg, memStat.UsedPercent
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
