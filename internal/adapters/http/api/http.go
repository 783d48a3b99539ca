// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
	"github.com/okian/platos/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Create(ctx context.Context, in model.CreationInput) (model.Dish, error)
	List(ctx context.Context) ([]model.Dish, error)
	Get(ctx context.Context, id int) (model.Dish, error)
	Update(ctx context.Context, id int, in model.UpdateInput) (model.Dish, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (model.Stats, error)
}

// AppInfo is reported by the health endpoint.
type AppInfo struct {
	Name    string
	Version string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	dishesHandler *DishesHandler
	logger        logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, info AppInfo, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler: NewHealthHandler(info),
		dishesHandler: NewDishesHandler(deps, log),
		logger:        log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /{$}", s.route("root", s.healthHandler.HandleRoot))
	mux.Handle("GET /health", s.route("health", s.healthHandler.HandleHealth))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	d := s.dishesHandler
	for _, prefix := range []string{"/platos/{$}", "/platos"} {
		mux.Handle("POST "+prefix, s.route("platos_create", d.HandleCreate))
		mux.Handle("GET "+prefix, s.route("platos_list", d.HandleList))
	}
	mux.Handle("GET /platos/stats/summary", s.route("platos_stats", d.HandleStats))
	mux.Handle("GET /platos/{id}", s.route("platos_get", d.HandleGet))
	mux.Handle("PUT /platos/{id}", s.route("platos_update", d.HandleUpdate))
	mux.Handle("PATCH /platos/{id}", s.route("platos_patch", d.HandleUpdate))
	mux.Handle("DELETE /platos/{id}", s.route("platos_delete", d.HandleDelete))
}

// route applies the middleware chain shared by every business endpoint.
func (s *Server) route(endpoint string, h http.HandlerFunc) http.Handler {
	return RequestIDMiddleware(LoggingMiddleware(s.logger, MetricsMiddleware(h, endpoint)))
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Detail string             `json:"detail"`
	Errors []model.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Detail: msg})
}

// statusFor maps registry errors to HTTP status codes:
// validation -> 422, not found -> 404, anything else -> 500.
func statusFor(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, status, validationResponse{Detail: ve.Error(), Errors: ve.Fields})
	case status == http.StatusRequestEntityTooLarge:
		writeError(w, status, ErrBodyTooLarge)
	case status == http.StatusInternalServerError:
		writeError(w, status, nil)
	default:
		writeError(w, status, err)
	}
}

// decodeBody reads a single JSON object from the request into v. Syntax
// and type errors come back as *model.ValidationError.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return model.NewValidationError("body", "field required")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return model.NewValidationError("body", "must contain a single JSON object")
	}
	if bytes.Equal(raw, []byte("null")) {
		return model.NewValidationError("body", "field required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var ute *json.UnmarshalTypeError
	var se *json.SyntaxError
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return model.NewValidationError("body", "field required")
	case errors.As(err, &mbe):
		return err
	case errors.As(err, &ute):
		if ute.Field == "" {
			return model.NewValidationError("body", "must be a JSON object")
		}
		return model.NewValidationError(ute.Field, "must be "+kindName(ute.Type))
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return model.NewValidationError("body", "invalid JSON")
	default:
		return model.NewValidationError("body", err.Error())
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Struct, reflect.Map:
		return "a JSON object"
	default:
		return "a valid " + t.Kind().String()
	}
}

// parseID reads the {id} path segment.
func parseID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// Well-formed but beyond any id the registry can assign.
		return 0, &model.NotFoundError{ID: id, Ref: raw}
	case err != nil:
		return 0, model.NewValidationError("id", "must be an integer")
	}
	return id, nil
}
