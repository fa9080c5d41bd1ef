// Package server exposes the import pipeline and villa persistence as
// an admin HTTP API. Authentication is expected to be fronted by the
// deployment.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poolvilladirect/villaimport/internal/logger"
	"github.com/poolvilladirect/villaimport/internal/store"
	"github.com/poolvilladirect/villaimport/pkg/importer"
)

// Importer runs the listing import pipeline.
type Importer interface {
	Validate(rawURL string) error
	Import(ctx context.Context, rawURL string) (*importer.ImportedVilla, error)
}

// VillaStore persists imported villas.
type VillaStore interface {
	CreateVilla(ctx context.Context, v *importer.ImportedVilla) (int64, error)
	ListVillas(ctx context.Context) ([]store.StoredVilla, error)
}

// Server wires handlers onto a router.
type Server struct {
	importer Importer
	villas   VillaStore // nil when no database is configured
	router   *mux.Router
}

// New creates a Server. villas may be nil; the persistence endpoints
// then answer 503.
func New(imp Importer, villas VillaStore) *Server {
	s := &Server{importer: imp, villas: villas}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/admin").Subrouter()
	api.HandleFunc("/import-villa", s.handleImportVilla).Methods(http.MethodPost)
	api.HandleFunc("/villas", s.handleCreateVilla).Methods(http.MethodPost)
	api.HandleFunc("/villas", s.handleListVillas).Methods(http.MethodGet)

	s.router = r
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

type importRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleImportVilla(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "URL ไม่ถูกต้อง"})
		return
	}

	villa, err := s.importer.Import(r.Context(), req.URL)
	if err != nil {
		var (
			validationErr *importer.ValidationError
			fetchErr      *importer.FetchError
		)
		switch {
		case errors.As(err, &validationErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})
		case errors.As(err, &fetchErr):
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: fetchErr.Error()})
		default:
			logger.Error("import failed", "url", req.URL, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "ดึงข้อมูลไม่สำเร็จ"})
		}
		return
	}

	writeJSON(w, http.StatusOK, villa)
}

func (s *Server) handleCreateVilla(w http.ResponseWriter, r *http.Request) {
	if s.villas == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage not configured"})
		return
	}

	var villa importer.ImportedVilla
	if err := json.NewDecoder(r.Body).Decode(&villa); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid villa payload"})
		return
	}

	id, err := s.villas.CreateVilla(r.Context(), &villa)
	if err != nil {
		logger.Error("villa create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store villa"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListVillas(w http.ResponseWriter, r *http.Request) {
	if s.villas == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage not configured"})
		return
	}

	villas, err := s.villas.ListVillas(r.Context())
	if err != nil {
		logger.Error("villa list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list villas"})
		return
	}
	if villas == nil {
		villas = []store.StoredVilla{}
	}

	writeJSON(w, http.StatusOK, villas)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
