package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondRecords renders a list result, normalizing a nil slice to [].
func respondRecords(w http.ResponseWriter, recs []store.Record) {
	if recs == nil {
		recs = []store.Record{}
	}
	respondJSON(w, http.StatusOK, recs)
}

// respondError maps the domain error taxonomy onto status codes: validation
// failures are 400, zero-row lookups are 404, anything else is an opaque 500
// logged with the real cause.
func (s *server) respondError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.storeErrors.Inc()
		s.log.Error("store failure", "err", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (s *server) respondDeleted(w http.ResponseWriter, entity string) {
	// 204 with a message body mirrors the historical API shape; net/http
	// drops the body on the wire for 204 responses.
	respondJSON(w, http.StatusNoContent, map[string]string{"message": entity + " deleted"})
}

func decode[T any](r *http.Request) (T, error) {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, &domain.ValidationError{Field: "body", Wrapped: err}
	}
	return in, nil
}

// intID parses the {id} path segment. A non-numeric segment behaves like a
// miss, not a client error: the route space for these entities is numeric.
func intID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": entity + " not found"})
		return 0, false
	}
	return id, true
}
