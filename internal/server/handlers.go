package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/llm"
	"github.com/jonathan/calendar-agent/internal/pipeline"
	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

// GenerateRequest represents the request body for /calendar
type GenerateRequest struct {
	Industry       string `json:"industry"`
	TargetAudience string `json:"target_audience"`
	ContentGoals   string `json:"content_goals"`
}

// GenerateResponse represents the response for /calendar
type GenerateResponse struct {
	RunID    string             `json:"run_id"`
	Status   string             `json:"status"`
	Calendar *artifact.Calendar `json:"calendar"`
}

// pipelineOptions assembles run options from server configuration.
func (s *Server) pipelineOptions(req GenerateRequest) pipeline.RunOptions {
	searchClient := search.NewClient(s.serpAPIKey, s.cacheStore)
	if s.searchBaseURL != "" {
		searchClient.BaseURL = s.searchBaseURL
	}

	var generator llm.Generator
	if s.anthropicBaseURL != "" {
		generator = llm.NewAnthropicClientWithBaseURL(s.anthropicKey, s.anthropicBaseURL)
	} else {
		generator = llm.NewAnthropicClient(s.anthropicKey)
	}

	return pipeline.RunOptions{
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		ContentGoals:   req.ContentGoals,
		Search:         searchClient,
		Generator:      generator,
		Artifacts:      s.artifacts,
		DatabaseURL:    s.databaseURL,
	}
}

// decodeGenerateRequest parses and validates the request body.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}

	calReq := &types.CalendarRequest{
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		ContentGoals:   req.ContentGoals,
	}
	if err := calReq.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Please fill out all fields: "+err.Error())
		return req, false
	}
	return req, true
}

// handleGenerate runs the pipeline synchronously and returns the calendar
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	runID := uuid.New().String()
	cal, err := pipeline.Run(r.Context(), s.pipelineOptions(req))
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		RunID:    runID,
		Status:   "completed",
		Calendar: cal,
	})
}

// handleGenerateStream runs the pipeline while streaming progress over SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.pipelineOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteProgress(event)
	}

	runID := uuid.New().String()
	cal, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(runID, cal)
}

// handleListCalendars lists saved artifact files, newest first
func (s *Server) handleListCalendars(w http.ResponseWriter, _ *http.Request) {
	names, err := s.artifacts.List()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"calendars": names})
}

// handleDownloadCalendar serves one saved artifact file
func (s *Server) handleDownloadCalendar(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	data, err := s.artifacts.Read(name)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Calendar not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	_, _ = w.Write(data)
}

// handleListRuns returns recorded run history
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a database")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns one recorded run with its calendar, if saved
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history requires a database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	cal, err := s.db.GetCalendar(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"run": run, "calendar": cal})
}
