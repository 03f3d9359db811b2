package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and Redis connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Refresh(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token != "" {
		_ = s.authService.Logout(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSetup godoc
// @Summary      Initial setup
// @Description  Create the first admin account. Only works on a fresh install.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SetupRequest  true  "Admin account details"
// @Success      201      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      403      {object}  ErrorResponse  "Setup already complete"
// @Router       /setup [post]
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req domain.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Setup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusForbidden, "setup already complete")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleGetMe godoc
// @Summary      Get current user
// @Description  Returns the authenticated user's identity
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AuthContext
// @Failure      401  {object}  ErrorResponse
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, authCtx)
}

// Retrieval endpoints

// SearchRequest represents a search request
// @Description Search request over the legal corpus
type SearchRequest struct {
	Query   string                `json:"query" example:"unfair dismissal remedies"`
	TopK    int                   `json:"top_k" example:"10"`
	Filters *domain.SearchFilters `json:"filters,omitempty"`
}

// handleSearch godoc
// @Summary      Search the legal corpus
// @Description  Runs tiered hybrid retrieval (vector + TF-IDF) over the ingested corpus
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SearchRequest  true  "Search parameters"
// @Success      200      {object}  domain.SearchResponse
// @Failure      400      {object}  ErrorResponse  "Empty query"
// @Failure      503      {object}  ErrorResponse  "Corpus not ingested"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := domain.SearchOptions{TopK: req.TopK, Filters: req.Filters}
	resp, err := s.searchService.Search(r.Context(), req.Query, opts)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleFindProvision godoc
// @Summary      Look up a specific provision
// @Description  Finds a provision by section number and act name, bypassing ranked retrieval
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        section       query     string  true   "Section number"  example(382)
// @Param        act           query     string  true   "Act name"        example(Fair Work Act 2009)
// @Param        jurisdiction  query     string  false  "Jurisdiction filter"  example(federal)
// @Success      200  {object}  domain.Provision
// @Failure      400  {object}  ErrorResponse  "Missing section"
// @Failure      404  {object}  ErrorResponse  "No matching provision"
// @Router       /provisions [get]
func (s *Server) handleFindProvision(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	act := r.URL.Query().Get("act")
	jurisdiction := domain.Jurisdiction("")
	if raw := r.URL.Query().Get("jurisdiction"); raw != "" {
		jurisdiction = domain.ParseJurisdiction(raw)
	}

	provision, err := s.searchService.FindProvision(r.Context(), section, act, jurisdiction)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "section is required")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no matching provision")
		case errors.Is(err, domain.ErrCorpusEmpty):
			writeError(w, http.StatusServiceUnavailable, "corpus not ingested")
		default:
			writeError(w, http.StatusInternalServerError, "provision lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, provision)
}

// handleStatus godoc
// @Summary      Retrieval status
// @Description  Reports corpus size and which retrieval tiers are available
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SearchStatus
// @Router       /status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.searchService.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Research endpoint

// ResearchRequest represents a research question
// @Description Legal research question
type ResearchRequest struct {
	Question string                `json:"question" example:"What constitutes unfair dismissal?"`
	TopK     int                   `json:"top_k" example:"10"`
	Filters  *domain.SearchFilters `json:"filters,omitempty"`
}

// handleResearch godoc
// @Summary      Answer a research question
// @Description  Retrieves relevant provisions, generates an answer, and gates it through compliance validation
// @Tags         Research
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ResearchRequest  true  "Research question"
// @Success      200      {object}  domain.ResearchAnswer
// @Failure      400      {object}  ErrorResponse  "Empty question"
// @Failure      503      {object}  ErrorResponse  "Corpus not ingested or LLM unavailable"
// @Router       /research [post]
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := domain.SearchOptions{TopK: req.TopK, Filters: req.Filters}
	answer, err := s.researchService.Answer(r.Context(), req.Question, opts)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Compliance endpoint

// ValidateRequest represents a compliance validation request
// @Description Response text to validate against compliance rules
type ValidateRequest struct {
	Response string `json:"response" example:"Under the Fair Work Act 2009 (Cth), a dismissal may be unfair if..."`
	Query    string `json:"query" example:"unfair dismissal"`
	// Metadata carries optional source facts, such as a when_scraped
	// timestamp checked for staleness
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ValidateResponse bundles a validation outcome with the rewritten text
// @Description Compliance validation outcome
type ValidateResponse struct {
	Validation *domain.ValidationResult `json:"validation"`
	Enhanced   string                   `json:"enhanced"`
}

// handleValidate godoc
// @Summary      Validate a response
// @Description  Runs compliance checks over arbitrary response text and returns the disclaimer-enhanced form
// @Tags         Compliance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ValidateRequest  true  "Response to validate"
// @Success      200      {object}  ValidateResponse
// @Failure      400      {object}  ErrorResponse  "Empty response text"
// @Router       /validate [post]
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Response == "" {
		writeError(w, http.StatusBadRequest, "response text is required")
		return
	}

	validation, err := s.complianceService.Validate(r.Context(), req.Response, req.Query, req.Metadata)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "validation failed")
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Validation: validation,
		Enhanced:   s.complianceService.Enhance(req.Response, validation),
	})
}

// Index management

// ReindexRequest represents an index rebuild request
// @Description Index rebuild request
type ReindexRequest struct {
	Force bool `json:"force" example:"false"`
	// Wait runs the rebuild synchronously instead of queueing it
	Wait bool `json:"wait" example:"false"`
}

// handleReindex godoc
// @Summary      Rebuild search indexes
// @Description  Queues a corpus reindex task, or runs it inline when wait is set
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ReindexRequest  true  "Rebuild options"
// @Success      200      {object}  domain.IndexReport  "Synchronous rebuild report"
// @Success      202      {object}  domain.Task         "Queued task"
// @Failure      403      {object}  ErrorResponse       "Admin access required"
// @Failure      503      {object}  ErrorResponse       "Corpus not ingested"
// @Router       /reindex [post]
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	var req ReindexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Wait {
		report, err := s.indexingService.BuildIndexes(r.Context(), req.Force)
		if err != nil {
			writeSearchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	task, err := s.indexingService.EnqueueRebuild(r.Context(), req.Force)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to queue rebuild")
		return
	}
	writeJSON(w, http.StatusAccepted, task)
}

// Helpers

// writeSearchError maps retrieval pipeline errors onto HTTP statuses
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCorpusEmpty):
		writeError(w, http.StatusServiceUnavailable, "corpus not ingested")
	case errors.Is(err, domain.ErrProviderUnavailable):
		writeError(w, http.StatusServiceUnavailable, "answer generation unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
