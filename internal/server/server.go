package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"corpus_dashboard/internal/analysis"
	"corpus_dashboard/internal/compare"
	"corpus_dashboard/internal/report"
)

// Store holds one loaded artifact. It is read-only after construction and
// safe to share between requests.
type Store struct {
	artifact *report.Artifact
	summary  report.Summary
}

func NewStore(a *report.Artifact) *Store {
	return &Store{artifact: a, summary: report.Summarize(a)}
}

func LoadStore(path string) (*Store, error) {
	a, err := report.Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(a), nil
}

type Options struct {
	AllowedOrigins []string
	RequestLog     bool
}

type Handler struct {
	store *Store
}

func NewRouter(store *Store, opts Options) http.Handler {
	r := chi.NewRouter()
	if opts.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &Handler{store: store}
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/api/analysis", h.GetAnalysis)
	r.Get("/api/summary", h.GetSummary)
	r.Get("/api/texts", h.ListTexts)
	r.Get("/api/texts/{id}", h.GetText)
	r.Get("/api/similarity/{a}/{b}", h.GetSimilarity)
	r.Get("/api/style/{metric}", h.GetStyleDelta)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"run_id":      h.store.artifact.Metadata.RunID,
		"total_texts": h.store.artifact.Metadata.TotalTexts,
	})
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.artifact)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.summary)
}

func (h *Handler) ListTexts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.summary.Texts)
}

func (h *Handler) GetText(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := h.store.artifact.Text(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown text id: "+id)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) GetSimilarity(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	p, err := h.store.artifact.Comparative.VocabularyOverlap.Pair(a, b)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetStyleDelta(w http.ResponseWriter, r *http.Request) {
	m, err := compare.ParseMetric(chi.URLParam(r, "metric"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	d, err := compare.StyleDelta(h.texts(), m)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) texts() []analysis.TextAnalysis {
	return h.store.artifact.Texts
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, compare.ErrUnknownText), errors.Is(err, compare.ErrUnknownMetric):
		return http.StatusNotFound
	case errors.Is(err, compare.ErrTooFewTexts), errors.Is(err, compare.ErrNoValues):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
