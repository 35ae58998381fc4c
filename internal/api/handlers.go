package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/roach88/strand/internal/analysis"
	"github.com/roach88/strand/internal/model"
	"github.com/roach88/strand/internal/store"
	"github.com/roach88/strand/internal/translator"
)

// maxBodyBytes caps the POST /strings request body.
const maxBodyBytes = 1 << 20

type listResponse struct {
	Data           []model.Record  `json:"data"`
	Count          int             `json:"count"`
	FiltersApplied model.FilterSet `json:"filters_applied"`
}

type naturalLanguageResponse struct {
	Data             []model.Record            `json:"data"`
	Count            int                       `json:"count"`
	InterpretedQuery translator.Interpretation `json:"interpreted_query"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// handleCreate analyzes and stores the "value" of a JSON body.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, &Error{Kind: KindTooLarge, Message: "Request body too large"})
			return
		}
		writeError(w, validationError("Invalid JSON body"))
		return
	}

	raw, ok := body["value"]
	if !ok || bytes.Equal(raw, []byte("null")) {
		writeError(w, validationError("Missing 'value' field"))
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		writeError(w, &Error{Kind: KindWrongType, Message: "Invalid data type for 'value' (must be string)"})
		return
	}
	if value == "" {
		writeError(w, validationError("Missing 'value' field"))
		return
	}

	rec := model.Record{
		ID:         analysis.ContentHash(value),
		Value:      value,
		Properties: analysis.Analyze(value),
		CreatedAt:  s.clock.Now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Insert(r.Context(), rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, &Error{Kind: KindConflict, Message: "String already exists", Err: err})
			return
		}
		s.logger.Error("insert string", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, storageError(err))
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetByValue(r.Context(), r.PathValue("value"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, &Error{Kind: KindNotFound, Message: "String not found"})
			return
		}
		s.logger.Error("get string", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, storageError(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.DeleteByValue(r.Context(), r.PathValue("value"))
	if err != nil {
		s.logger.Error("delete string", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, storageError(err))
		return
	}
	if !removed {
		writeError(w, &Error{Kind: KindNotFound, Message: "String not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filters, perr := parseFilters(r.URL.Query())
	if perr != nil {
		writeError(w, perr)
		return
	}

	records, err := s.listStrings(r.Context(), filters)
	if err != nil {
		s.logger.Error("list strings", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, storageError(err))
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data:           records,
		Count:          len(records),
		FiltersApplied: filters,
	})
}

// handleNaturalLanguage translates the free-text "query" parameter and
// lists through the same path as handleList.
func (s *Server) handleNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, validationError("Missing 'query' parameter"))
		return
	}

	interp := translator.Interpret(query)
	s.logger.Debug("interpreted query",
		"query", query,
		"filters", interp.ParsedFilters.Object(),
		"request_id", RequestID(r.Context()),
	)

	records, err := s.listStrings(r.Context(), interp.ParsedFilters)
	if err != nil {
		s.logger.Error("list strings", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, storageError(err))
		return
	}

	writeJSON(w, http.StatusOK, naturalLanguageResponse{
		Data:             records,
		Count:            len(records),
		InterpretedQuery: interp,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		writeError(w, storageError(err))
		return
	}
	n, err := s.store.Count(r.Context())
	if err != nil {
		s.logger.Error("health check", "error", err)
		writeError(w, storageError(err))
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Records: n})
}

// listStrings is the single listing path shared by the structured and
// natural-language endpoints.
func (s *Server) listStrings(ctx context.Context, filters model.FilterSet) ([]model.Record, error) {
	records, err := s.store.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}
