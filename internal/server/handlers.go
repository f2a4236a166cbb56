package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/search"
	"github.com/pagehound/pagehound/internal/storage"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		status, message := searchErrorStatus(err)
		s.respondError(w, status, message)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// searchErrorStatus maps engine errors to HTTP responses. Transient failures
// (timeout, embedding backend, empty index) get 503 so clients retry; a
// dimension mismatch is an operator error and gets 500.
func searchErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, search.ErrSearchTimeout):
		return http.StatusServiceUnavailable, "search temporarily unavailable: timeout"
	case errors.Is(err, search.ErrEmbeddingFailed):
		return http.StatusServiceUnavailable, "search temporarily unavailable: embedding failed"
	case errors.Is(err, search.ErrIndexNotReady):
		return http.StatusServiceUnavailable, "search index not ready"
	case errors.Is(err, search.ErrDimensionMismatch):
		return http.StatusInternalServerError, "search index misconfigured"
	default:
		return http.StatusBadRequest, err.Error()
	}
}

func (s *Server) handleIngestChunks(w http.ResponseWriter, r *http.Request) {
	var batch models.ChunkBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(batch.Chunks) == 0 {
		s.respondError(w, http.StatusBadRequest, "chunks is required")
		return
	}
	s.logger.Debug("ingest request", zap.Int("chunks", len(batch.Chunks)))
	n, err := s.ingester.IngestChunks(r.Context(), batch.Chunks)
	if err != nil {
		s.logger.Error("ingest failed", zap.Error(err))
		if errors.Is(err, search.ErrDimensionMismatch) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{"indexed": n, "status": "indexed"})
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	s.logger.Debug("delete page request", zap.String("url", url))
	n, err := s.ingester.DeletePage(r.Context(), url)
	if err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"url": url, "deleted": n, "status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chunkCount, err := s.storage.CountChunks(ctx)
	if err != nil {
		s.logger.Error("status: count chunks failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pageCount, err := s.storage.CountPages(ctx)
	if err != nil {
		s.logger.Error("status: count pages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"pages":            pageCount,
		"chunks":           chunkCount,
		"dense_index_size": s.engine.DenseIndexSize(),
	}
	if s.config != nil {
		resp["config"] = map[string]interface{}{
			"embedding_provider":   s.config.Embedding.Provider,
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"dense_weight":         s.config.Search.DenseWeight,
			"sparse_weight":        s.config.Search.SparseWeight,
			"database_path":        s.config.Storage.DatabasePath,
			"bleve_index_path":     s.config.Storage.BleveIndexPath,
		}
		diskBytes, err := storage.DiskUsageBytes(
			s.config.Storage.DatabasePath,
			s.config.Storage.BleveIndexPath,
			s.config.Storage.DenseSnapshotPath,
		)
		if err == nil {
			resp["disk_usage_bytes"] = diskBytes
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
