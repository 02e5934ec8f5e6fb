// Package server provides the HTTP REST API for the job search agent.
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
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordan/job-search-agent/internal/agent"
	"github.com/jordan/job-search-agent/internal/config"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/knowledge"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/notion"
	"github.com/jordan/job-search-agent/internal/search"
	"github.com/jordan/job-search-agent/internal/server/middleware"
	"github.com/jordan/job-search-agent/internal/server/ratelimit"
	"github.com/jordan/job-search-agent/internal/types"
)

// JobSearcher finds job listings. *search.Client implements it.
type JobSearcher interface {
	SearchJobs(ctx context.Context, params search.Params) ([]types.JobResult, error)
	SearchTargetRoles(ctx context.Context, roles []string, location string, perRole int) ([]types.JobResult, error)
	SearchByCompany(ctx context.Context, company, location string, roles []string, limit int) ([]types.JobResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *db.Store
	llm         llm.Client   // nil when no LLM key is configured
	searcher    JobSearcher  // nil when no search key is configured
	syncer      agent.Syncer // nil when Notion is not configured
	retriever   knowledge.Retriever
	agent       *agent.Agent
	cfg         Config
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabasePath string

	LLMProvider string
	LLMAPIKey   string
	SerpAPIKey  string

	NotionToken      string
	NotionDatabaseID string

	// Daily agent defaults, also used by the tailor workflow
	OutputDir    string
	TargetRoles  []string
	Location     string
	TopCompanies []string
	DailyLimit   int
	FollowUpDays int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	store, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{
		store:    store,
		agent:    agent.New(),
		cfg:      cfg,
		validate: validator.New(),
	}

	// Optional integrations. A missing key leaves the client nil and the
	// routes that need it return 503.
	if cfg.LLMAPIKey != "" {
		llmConfig, err := llm.ConfigForProvider(cfg.LLMProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to configure LLM provider: %w", err)
		}
		client, err := llm.NewClient(context.Background(), llmConfig, cfg.LLMAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llm = client
	}
	if cfg.SerpAPIKey != "" {
		searchClient, err := search.NewClient(cfg.SerpAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		s.searcher = searchClient
	}
	if cfg.NotionToken != "" && cfg.NotionDatabaseID != "" {
		notionClient, err := notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Notion client: %w", err)
		}
		s.syncer = notionClient
	}

	// Semantic retrieval needs the Gemini embedding API; otherwise fall
	// back to keyword matching.
	s.retriever = knowledge.NewKeywordRetriever(store)
	if cfg.LLMAPIKey != "" && (cfg.LLMProvider == "" || cfg.LLMProvider == string(llm.ProviderGemini)) {
		if embedder, err := knowledge.NewGeminiEmbedder(context.Background(), cfg.LLMAPIKey); err == nil {
			s.retriever = knowledge.NewVectorRetriever(store, embedder)
		} else {
			log.Printf("Warning: embeddings unavailable, using keyword retrieval: %v", err)
		}
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Authenticated API routes. The outer mux strips the /api prefix.
	api := http.NewServeMux()

	// Application tracker
	api.HandleFunc("POST /applications", s.handleCreateApplication)
	api.HandleFunc("GET /applications", s.handleListApplications)
	api.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	api.HandleFunc("PUT /applications/{id}", s.handleUpdateApplication)
	api.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)
	api.HandleFunc("POST /applications/{id}/status", s.handleUpdateApplicationStatus)
	api.HandleFunc("POST /applications/{id}/interviews", s.handleAddInterview)
	api.HandleFunc("GET /applications/{id}/interviews", s.handleListInterviews)
	api.HandleFunc("GET /stats", s.handleStats)
	api.HandleFunc("GET /follow-ups", s.handleFollowUps)

	// Contacts
	api.HandleFunc("GET /contacts", s.handleListContacts)
	api.HandleFunc("POST /contacts", s.handleCreateContact)

	// Company research
	api.HandleFunc("GET /companies", s.handleListCompanyProfiles)
	api.HandleFunc("GET /companies/{company}", s.handleGetCompanyProfile)
	api.HandleFunc("POST /research", s.handleResearch)

	// Resume tailoring
	api.HandleFunc("POST /tailor", s.handleTailor)
	api.HandleFunc("GET /resumes", s.handleListResumes)
	api.HandleFunc("GET /resumes/{id}", s.handleGetResume)

	// Outreach messages
	api.HandleFunc("POST /messages", s.handleComposeMessage)
	api.HandleFunc("GET /messages", s.handleListMessages)

	// Job search and knowledge assistant
	api.HandleFunc("POST /search", s.handleSearch)
	api.HandleFunc("POST /ask", s.handleAsk)

	// Daily agent
	api.HandleFunc("POST /agent/run", s.handleAgentRun)
	api.HandleFunc("POST /agent/run/stream", s.handleAgentRunStream)
	api.HandleFunc("GET /agent/status", s.handleAgentStatus)

	// Authenticated user
	api.HandleFunc("GET /me", s.handleMe)

	// Public routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("/api/", http.StripPrefix("/api",
		middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(api)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.withJSONErrors(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for tailor runs and agent streams
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llm != nil {
		s.llm.Close()
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
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

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withJSONErrors rewrites the mux's plain-text 404/405 responses into the
// API's JSON error shape.
func (s *Server) withJSONErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}

// jsonErrorWriter intercepts 404/405 status writes whose Content-Type is
// not already JSON and replaces the body. Handlers that set their own JSON
// Content-Type pass through untouched.
type jsonErrorWriter struct {
	http.ResponseWriter
	intercepted bool
}

func (w *jsonErrorWriter) WriteHeader(status int) {
	if (status == http.StatusNotFound || status == http.StatusMethodNotAllowed) &&
		!strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		w.intercepted = true
		w.Header().Set("Content-Type", "application/json")
		w.ResponseWriter.WriteHeader(status)

		message := "not found"
		if status == http.StatusMethodNotAllowed {
			message = "method not allowed"
		}
		json.NewEncoder(w.ResponseWriter).Encode(map[string]string{"error": message}) //nolint:errcheck
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.intercepted {
		// Swallow the plain-text body that follows an intercepted status
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Flush keeps SSE streaming working through the wrapper.
func (w *jsonErrorWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleMe returns the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// requireLLM guards routes that need the LLM client.
func (s *Server) requireLLM(w http.ResponseWriter) bool {
	if s.llm == nil {
		errorResponse(w, http.StatusServiceUnavailable, "LLM client not configured")
		return false
	}
	return true
}

// requireSearcher guards routes that need the job search client.
func (s *Server) requireSearcher(w http.ResponseWriter) bool {
	if s.searcher == nil {
		errorResponse(w, http.StatusServiceUnavailable, "search client not configured")
		return false
	}
	return true
}

// extractClientID identifies the caller for rate limiting. Authenticated
// requests are keyed by bearer token so clients behind a shared IP get
// separate budgets; everything else falls back to the IP address.
func (s *Server) extractClientID(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.Fields(auth)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return "token:" + parts[1]
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
