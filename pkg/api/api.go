// Package api exposes the summaries and aggregations over HTTP.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
	"github.com/Allen4fis/crewtime/pkg/db"
)

// Server routes API requests to the aggregation layer.
type Server struct {
	DB  *sqlx.DB
	Log logr.Logger

	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewServer wires a server and registers its metrics with the default
// prometheus registry.
func NewServer(rdb *sqlx.DB, log logr.Logger) *Server {
	return &Server{
		DB:  rdb,
		Log: log,
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewtime_requests_total",
			Help: "Total number of API requests by route and status code.",
		}, []string{"route", "code"}),
		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "crewtime_request_duration_seconds",
			Help: "API request duration.",
		}),
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/summaries/time", s.handleTimeSummaries)
		r.Get("/summaries/rentals", s.handleRentalSummaries)
		r.Get("/payroll", s.handlePayroll)
		r.Get("/jobs", s.handleJobs)

		r.Post("/time-entries", s.handleCreateTimeEntry)
		r.Post("/rental-entries", s.handleCreateRentalEntry)

		r.Post("/jobs/{id}/invoiced-dates", s.handleJobDates(db.AddInvoicedDates))
		r.Delete("/jobs/{id}/invoiced-dates", s.handleJobDates(db.RemoveInvoicedDates))
		r.Post("/jobs/{id}/paid-dates", s.handleJobDates(db.AddPaidDates))
		r.Delete("/jobs/{id}/paid-dates", s.handleJobDates(db.RemovePaidDates))
	})

	return r
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.requests.WithLabelValues(r.URL.Path, strconv.Itoa(sw.status)).Inc()
		s.duration.Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func filterFromQuery(r *http.Request) aggregate.Filter {
	q := r.URL.Query()
	includeInvoiced := true
	if v, err := strconv.ParseBool(q.Get("include_invoiced")); err == nil {
		includeInvoiced = v
	}
	billableOnly, _ := strconv.ParseBool(q.Get("billable_only"))
	return aggregate.Filter{
		From:            q.Get("from"),
		To:              q.Get("to"),
		EmployeeName:    q.Get("employee"),
		JobNumber:       q.Get("job_number"),
		Province:        q.Get("province"),
		BillableOnly:    billableOnly,
		IncludeInvoiced: includeInvoiced,
	}
}

func (s *Server) snapshot(r *http.Request) (db.Snapshot, error) {
	ctx := r.Context()
	tx, err := s.DB.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return db.Snapshot{}, err
	}
	defer tx.Rollback()
	return db.LoadSnapshot(ctx, tx)
}

func (s *Server) handleTimeSummaries(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, aggregate.FilterTimeEntries(snap, filterFromQuery(r)))
}

func (s *Server) handleRentalSummaries(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, aggregate.FilterRentals(snap, filterFromQuery(r)))
}

func (s *Server) handlePayroll(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	filter := filterFromQuery(r)
	if n, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil {
		s.writeJSON(w, aggregate.TopEmployees(aggregate.Employees(snap, filter), n))
		return
	}
	if flat, _ := strconv.ParseBool(r.URL.Query().Get("flat")); flat {
		s.writeJSON(w, aggregate.Employees(snap, filter))
		return
	}
	s.writeJSON(w, aggregate.Hierarchy(snap, filter))
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	stats := aggregate.Jobs(snap, filterFromQuery(r))
	if n, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil {
		stats = aggregate.TopJobs(stats, n)
	}
	s.writeJSON(w, stats)
}

func (s *Server) handleCreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var entry db.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := db.CreateTimeEntry(s.DB, entry)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSONStatus(w, http.StatusCreated, created)
}

func (s *Server) handleCreateRentalEntry(w http.ResponseWriter, r *http.Request) {
	var entry db.RentalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := db.CreateRentalEntry(s.DB, entry)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSONStatus(w, http.StatusCreated, created)
}

type datesRequest struct {
	Dates []string `json:"dates"`
}

func (s *Server) handleJobDates(mutate func(context.Context, sqlx.ExtContext, string, []string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobId := chi.URLParam(r, "id")
		var req datesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := mutate(r.Context(), s.DB, jobId, req.Dates); err != nil {
			s.storeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case db.IsDuplicate(err):
		http.Error(w, "duplicate entry", http.StatusConflict)
	case db.IsMissingReference(err):
		http.Error(w, "referenced record does not exist", http.StatusBadRequest)
	default:
		s.internalError(w, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.Log.Error(err, "request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	s.writeJSONStatus(w, http.StatusOK, v)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error(err, "failed to encode response")
	}
}
