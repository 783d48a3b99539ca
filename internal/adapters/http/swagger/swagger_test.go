package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Bytes(), convey.ShouldResemble, OpenAPI)
			})

			for _, path := range []string{"/docs", "/redoc"} {
				convey.Convey("And it should serve the ReDoc page at "+path, func() {
					req := httptest.NewRequest("GET", path, http.NoBody)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)

					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
					convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
					convey.So(w.Body.String(), convey.ShouldContainSubstring, "Platos API - ReDoc")
					convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
					convey.So(w.Body.String(), convey.ShouldContainSubstring, redocScript)
				})
			}

			convey.Convey("And it should reject other methods", func() {
				req := httptest.NewRequest("POST", "/docs", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it describes every dish route", func() {
			paths, ok := doc["paths"].(map[string]any)
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{"/", "/health", "/platos/", "/platos/{id}", "/platos/stats/summary"} {
				convey.So(paths, convey.ShouldContainKey, p)
			}

			item, ok := paths["/platos/{id}"].(map[string]any)
			convey.So(ok, convey.ShouldBeTrue)
			for _, m := range []string{"get", "put", "patch", "delete"} {
				convey.So(item, convey.ShouldContainKey, m)
			}
		})

		convey.Convey("And it names the API", func() {
			info, ok := doc["info"].(map[string]any)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(info["title"], convey.ShouldEqual, "Platos API")
		})
	})
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		ctx := context.Background()

		convey.Convey("When registering the swagger handler", func() {
			convey.Convey("Then it should panic", func() {
				convey.So(func() {
					Register(ctx, nil)
				}, convey.ShouldPanic)
			})
		})
	})
}
