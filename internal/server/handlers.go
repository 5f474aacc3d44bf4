package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fpgroups/pkg/errors"
	"github.com/matzehuels/fpgroups/pkg/pipeline"
	"github.com/matzehuels/fpgroups/pkg/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// listBody is the response of GET /v1/reports.
type listBody struct {
	Reports []*store.Report `json:"reports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalysis runs one analysis kind and stores the result as a report.
func (s *Server) handleAnalysis(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts pipeline.Options
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
			return
		}
		opts.Kind = kind
		opts.Logger = log.FromContext(r.Context())
		if err := opts.ValidateAndSetDefaults(); err != nil {
			writeError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()

		res, err := s.runner.Execute(ctx, opts)
		if err != nil {
			writeError(w, r, err)
			return
		}

		report := store.NewReport(opts, res)
		if err := s.store.Save(r.Context(), report); err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "could not save report"))
			return
		}
		writeJSON(w, r, http.StatusOK, report)
	}
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		writeError(w, r, err)
		return
	}
	report, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	reports, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reports == nil {
		reports = []*store.Report{}
	}
	writeJSON(w, r, http.StatusOK, listBody{Reports: reports})
}

func notFoundRoute(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error("encoding response failed", "error", err)
	}
}

// writeError maps err to a status and an error body. Errors without a code
// are reported as internal errors and their text is only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	message := errors.UserMessage(err)
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		code = errors.ErrCodeInvalidInput
		message = "request body too large"
	case code == "":
		code = errors.ErrCodeInternal
		message = "internal server error"
	}
	status := errors.HTTPStatus(code)
	if tooLarge != nil {
		status = http.StatusRequestEntityTooLarge
	}

	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "error", err)
	} else {
		logger.Debug("request rejected", "code", code, "error", err)
	}

	writeJSON(w, r, status, errorBody{
		Error:     errorDetail{Code: code, Message: message},
		RequestID: requestIDFrom(r.Context()),
	})
}
