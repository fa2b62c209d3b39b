// Package server exposes the strings database over HTTP.
//
//	GET  /strings?filter=&sort=&page=&size=   one page of matching entries
//	GET  /strings/{id}                        a single entry
//	POST /strings                             save {"value": "..."}
//	GET  /openapi.yaml                        the API description
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"stringsdb/internal/domain"
	"stringsdb/internal/entries"
	"stringsdb/internal/store"
)

// EntryService is the subset of entries.Service the handlers use
type EntryService interface {
	Save(ctx context.Context, value string) (domain.StringEntry, error)
	Get(ctx context.Context, id int64) (domain.StringEntry, error)
	Search(ctx context.Context, req entries.SearchRequest) (domain.Page, error)
}

type handler struct {
	svc    EntryService
	logger *zap.Logger
}

// NewHandler builds the complete HTTP handler, middleware included
func NewHandler(svc EntryService, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	h := &handler{svc: svc, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /strings", h.searchStrings)
	mux.HandleFunc("POST /strings", h.saveString)
	mux.HandleFunc("GET /strings/{id}", h.getString)
	mux.HandleFunc("GET /openapi.yaml", h.openAPI)

	var root http.Handler = validator.middleware(mux)
	root = withRecover(logger)(root)
	root = withAccessLog(logger)(root)
	root = withRequestID(root)
	return root, nil
}

type saveRequest struct {
	Value *string `json:"value"`
}

func (h *handler) saveString(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed JSON request body")
		return
	}
	if req.Value == nil {
		writeError(w, r, http.StatusBadRequest, "field 'value': rejected value [null]")
		return
	}

	entry, err := h.svc.Save(r.Context(), *req.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *handler) searchStrings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid parameter 'page': "+err.Error())
		return
	}
	size, err := intParam(q.Get("size"), entries.DefaultPageSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid parameter 'size': "+err.Error())
		return
	}

	result, err := h.svc.Search(r.Context(), entries.SearchRequest{
		Filter: q.Get("filter"),
		Sort:   q.Get("sort"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getString(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid parameter 'id'")
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *handler) openAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIDocument)
}

// fail maps service errors onto HTTP responses
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *entries.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "The item was not found")
	default:
		h.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// Server runs the handler on a TCP address
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New creates a Server listening on addr
func New(addr string, h http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
