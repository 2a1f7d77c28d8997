// Package server provides the HTTP REST API for Hire.io.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hireio/hireio/internal/config"
	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/extract"
	"github.com/hireio/hireio/internal/llm"
	"github.com/hireio/hireio/internal/match"
	"github.com/hireio/hireio/internal/server/middleware"
	"github.com/hireio/hireio/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	store          Store
	closeStore     func()
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	accountService *AccountService
	authHandler    *AuthHandler
	extractor      *extract.Extractor
	scorer         *match.Scorer
	llmClient      llm.Client // nil when no API key is configured
	shortlistLimit int
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dict, err := extract.LoadDictionary(cfg.DictionaryPath)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load skill dictionary: %w", err)
	}

	s := &Server{
		store:          database,
		closeStore:     database.Close,
		extractor:      extract.NewExtractor(dict),
		scorer:         match.NewScorer(match.DefaultConfig()),
		shortlistLimit: cfg.ShortlistLimit,
	}

	// AI job profiles are optional; without a key the endpoint reports the
	// feature as disabled.
	if cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.accountService = NewAccountService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.accountService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except health and the two auth
// entry points requires a valid token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	protected := http.NewServeMux()

	// Membership endpoints
	protected.HandleFunc("POST /users/invite", s.authHandler.Invite)
	protected.HandleFunc("GET /me", s.handleMe)

	// Job endpoints
	protected.HandleFunc("POST /jobs", s.handleCreateJob)
	protected.HandleFunc("GET /jobs", s.handleListJobs)
	protected.HandleFunc("POST /jobs/ingest", s.handleIngestJob)
	protected.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	protected.HandleFunc("PUT /jobs/{id}", s.handleUpdateJob)
	protected.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)
	protected.HandleFunc("POST /jobs/{id}/ai-profile", s.handleGenerateJobProfile)
	protected.HandleFunc("POST /jobs/{id}/rescore", s.handleRescoreJob)

	// Application endpoints
	protected.HandleFunc("POST /jobs/{id}/applications", s.handleCreateApplication)
	protected.HandleFunc("GET /jobs/{id}/applications", s.handleListApplications)
	protected.HandleFunc("GET /jobs/{id}/shortlist", s.handleShortlist)
	protected.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	protected.HandleFunc("PUT /applications/{id}/status", s.handleUpdateApplicationStatus)
	protected.HandleFunc("GET /applications/{id}/score", s.handleExplainScore)

	// Candidate endpoints
	protected.HandleFunc("POST /candidates", s.handleCreateCandidate)
	protected.HandleFunc("GET /candidates", s.handleListCandidates)
	protected.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	protected.HandleFunc("PUT /candidates/{id}", s.handleUpdateCandidate)
	protected.HandleFunc("DELETE /candidates/{id}", s.handleDeleteCandidate)
	protected.HandleFunc("POST /candidates/{id}/resume", s.handleUploadResume)

	// Audit trail
	protected.HandleFunc("GET /audit-events", s.handleListAuditEvents)

	mux.Handle("/", middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(protected))

	return mux
}

// Start serves requests until SIGINT or SIGTERM, then drains in-flight
// requests and releases the limiter, LLM client, and database pool.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("hire.io API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")

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
	if s.closeStore != nil {
		s.closeStore()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS answers preflight requests and marks every response as
// cross-origin readable.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per completed request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s in %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the caller's own profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), identity.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, convertDBUser(user))
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// parseQueryInt reads an integer query parameter, falling back to def when
// absent or invalid.
func parseQueryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// extractClientID keys rate limiting by the peer IP. X-Forwarded-For is
// ignored until requests arrive through a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders reports the caller's remaining budget.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

// rateLimitResponse writes the 429 body for a throttled request.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	log.Printf("[rate-limit] client over budget: limit=%d remaining=%d reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
