package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		Convey("Then error types follow the status", func() {
			So(getErrorType(500), ShouldEqual, "server_error")
			So(getErrorType(422), ShouldEqual, "validation")
			So(getErrorType(404), ShouldEqual, "not_found")
			So(getErrorType(405), ShouldEqual, "client_error")
			So(getErrorType(200), ShouldEqual, "unknown")
		})

		Convey("And severities follow the status class", func() {
			So(getErrorSeverity(503), ShouldEqual, "high")
			So(getErrorSeverity(422), ShouldEqual, "medium")
			So(getErrorSeverity(204), ShouldEqual, "low")
		})
	})

	Convey("Given registry errors", t, func() {
		Convey("Then each maps to its status", func() {
			So(statusFor(model.NewValidationError("name", "x")), ShouldEqual, http.StatusUnprocessableEntity)
			So(statusFor(&model.NotFoundError{ID: 3}), ShouldEqual, http.StatusNotFound)
			So(statusFor(&http.MaxBytesError{Limit: 1}), ShouldEqual, http.StatusRequestEntityTooLarge)
			So(statusFor(errors.New("boom")), ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestResponseWriter(t *testing.T) {
	Convey("Given a wrapped response writer", t, func() {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		Convey("When the header is written twice", func() {
			rw.WriteHeader(http.StatusNotFound)
			rw.WriteHeader(http.StatusTeapot)

			Convey("Then the first status is kept", func() {
				So(rw.statusCode, ShouldEqual, http.StatusNotFound)
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When only the body is written", func() {
			_, err := rw.Write([]byte("ok"))

			Convey("Then the status stays 200", func() {
				So(err, ShouldBeNil)
				So(rw.statusCode, ShouldEqual, http.StatusOK)
				So(rw.Unwrap(), ShouldEqual, rec)
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
		}))

		Convey("When the client id is too long", func() {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then a fresh id replaces it", func() {
				So(seen, ShouldHaveLength, 36)
				So(w.Header().Get(requestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When no middleware ran", func() {
			Convey("Then the context holds no id", func() {
				So(RequestIDFrom(context.Background()), ShouldBeEmpty)
			})
		})
	})
}

func TestDecodeBody(t *testing.T) {
	Convey("Given JSON request bodies", t, func() {
		decode := func(body string) error {
			var in model.UpdateInput
			r := httptest.NewRequest("PATCH", "/platos/1", strings.NewReader(body))
			return decodeBody(httptest.NewRecorder(), r, &in)
		}

		Convey("Then a wrong type names the field", func() {
			err := decode(`{"precio":"cheap"}`)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "precio: must be a number")
		})

		Convey("And a syntax error is reported on the body", func() {
			So(decode(`{"precio":}`).Error(), ShouldEqual, "body: invalid JSON")
		})

		Convey("And an empty body is a missing body", func() {
			So(decode(``).Error(), ShouldEqual, "body: field required")
		})

		Convey("And a null body is a missing body", func() {
			err := decode(`null`)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "body: field required")
		})

		Convey("And a well formed object decodes", func() {
			So(decode(`{"name":"A"}`), ShouldBeNil)
		})
	})
}

func TestLoggingMiddleware(t *testing.T) {
	Convey("Given a failing handler behind the logging middleware", t, func() {
		h := LoggingMiddleware(logger.Nop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		Convey("Then the status passes through", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestParseID(t *testing.T) {
	Convey("Given path ids", t, func() {
		parse := func(raw string) (int, error) {
			r := httptest.NewRequest("GET", "/platos/x", http.NoBody)
			r.SetPathValue("id", raw)
			return parseID(r)
		}

		Convey("Then an integer parses", func() {
			id, err := parse("42")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, 42)
		})

		Convey("And a non-integer is a validation failure", func() {
			_, err := parse("abc")
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("And an integer beyond int range is not found", func() {
			_, err := parse("99999999999999999999")
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Dish with ID 99999999999999999999 not found")
		})
	})
}
