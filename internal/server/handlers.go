package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/export"
	"github.com/shopsync/shopsync/internal/models"
)

func searchQueryFromRequest(r *http.Request) models.SearchQuery {
	params := r.URL.Query()
	return models.SearchQuery{
		Query:    params.Get("q"),
		Sort:     params.Get("sort"),
		Strategy: params.Get("strategy"),
		Mock:     params.Get("mock") == "true",
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := searchQueryFromRequest(r)
	if err := query.Validate(); err != nil {
		s.respondJSON(w, http.StatusBadRequest, models.SearchResponse{
			Success:  false,
			Error:    err.Error(),
			Products: []models.UnifiedProduct{},
		})
		return
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query),
		zap.String("sort", query.Sort),
		zap.String("strategy", query.Strategy))
	response := s.searcher.Search(r.Context(), query)
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := searchQueryFromRequest(r)
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	response := s.searcher.Search(r.Context(), query)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "shopsync-results.xlsx"))
	if err := export.WriteXLSX(w, query.Query, response.Products); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.respondJSON(w, http.StatusBadRequest, models.ChatResponse{
			Success: false,
			Error:   "Message is required",
		})
		return
	}
	s.logger.Debug("chat request",
		zap.Int("message_len", len(req.Message)),
		zap.Int("products", len(req.CurrentProducts)))
	response := s.assistant.Process(r.Context(), req)
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	response := s.comparer.Compare(r.Context(), req)
	if !response.Success {
		s.respondJSON(w, http.StatusBadRequest, response)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ShopSync API",
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "ShopSync API",
		"version": "1.0",
		"endpoints": map[string]string{
			"search":  "/api/v1/search?q=<query>",
			"export":  "/api/v1/search/export?q=<query>",
			"chat":    "/api/v1/chat",
			"compare": "/api/v1/compare",
			"health":  "/health",
		},
		"sort_options": []string{
			models.SortRelevance,
			models.SortPriceAsc,
			models.SortPriceDesc,
			models.SortRating,
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
