package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nikhil/job-portal/internal/config"
	"github.com/nikhil/job-portal/internal/db"
	"github.com/nikhil/job-portal/internal/llm"
	"github.com/nikhil/job-portal/internal/practice"
	"github.com/nikhil/job-portal/internal/server/middleware"
	"github.com/nikhil/job-portal/internal/server/ratelimit"
	"github.com/nikhil/job-portal/internal/stats"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	stats       *stats.Recorder // nil when Redis is not configured
	practice    *practice.Service
	llmClient   llm.Client
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	// Connect to database
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:         database,
		jwtService: NewJWTService(cfg.JWT),
		validate:   validator.New(),
	}

	// Redis is optional: without it the trending endpoint degrades.
	if cfg.RedisURL != "" {
		recorder, err := stats.NewRecorder(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.stats = recorder
	}

	// The practice service is optional: without an API key its endpoints
	// return 503.
	if cfg.GeminiKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		svc, err := practice.NewService(client)
		if err != nil {
			return nil, fmt.Errorf("failed to create practice service: %w", err)
		}
		s.practice = svc
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	requireAuth := middleware.RequireAuth(s.jwtService.AsTokenValidator())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Job endpoints
	mux.HandleFunc("GET /jobs", s.handleSearchJobs)
	mux.HandleFunc("GET /jobs/trending", s.handleTrendingJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("PUT /jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("PATCH /jobs/{id}/status", s.handleUpdateJobStatus)
	mux.Handle("GET /jobs/{id}/match", requireAuth(http.HandlerFunc(s.handleMatchJob)))

	// Application endpoints
	mux.Handle("POST /jobs/{id}/applications", requireAuth(http.HandlerFunc(s.handleApplyToJob)))
	mux.Handle("GET /candidates/me/applications", requireAuth(http.HandlerFunc(s.handleListMyApplications)))
	mux.HandleFunc("PATCH /applications/{id}/status", s.handleUpdateApplicationStatus)

	// Candidate profile endpoints
	mux.Handle("GET /candidates/me", requireAuth(http.HandlerFunc(s.handleGetMyProfile)))
	mux.Handle("PUT /candidates/me", requireAuth(http.HandlerFunc(s.handleUpdateMyProfile)))

	// Company review endpoints
	mux.HandleFunc("GET /companies/{company}/reviews", s.handleListReviews)
	mux.Handle("POST /companies/{company}/reviews", requireAuth(http.HandlerFunc(s.handleCreateReview)))

	// Salary data
	mux.HandleFunc("GET /salaries", s.handleSalaries)

	// Interview practice endpoints
	mux.Handle("POST /practice/questions", requireAuth(http.HandlerFunc(s.handlePracticeQuestions)))
	mux.Handle("POST /practice/evaluate", requireAuth(http.HandlerFunc(s.handlePracticeEvaluate)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.stats != nil {
		_ = s.stats.Close()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit applies per-client rate limiting
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
			}
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the client for rate limiting, preferring the
// first X-Forwarded-For hop over the socket address.
func (s *Server) extractClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
