package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/platos/internal/config"
	"github.com/okian/platos/pkg/logger"
	"github.com/okian/platos/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PLATOS_PORT", "8080")
			_ = os.Setenv("PLATOS_SEED", "false")
			defer func() {
				_ = os.Unsetenv("PLATOS_PORT")
				_ = os.Unsetenv("PLATOS_SEED")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr(), convey.ShouldEqual, "0.0.0.0:8080")
				convey.So(cfg.Seed, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When wiring the seeded service and routes", func() {
			ctx := context.Background()
			cfg := config.New()
			svc := newService(cfg, logger.Nop())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			mux := newMux(ctx, cfg, svc, logger.Nop())

			convey.Convey("Then the default menu is served", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/platos/", http.NoBody))

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				var list []map[string]any
				convey.So(json.NewDecoder(w.Body).Decode(&list), convey.ShouldBeNil)
				convey.So(list, convey.ShouldHaveLength, 7)
			})

			convey.Convey("And health reports the configured name", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", http.NoBody))

				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"app":"Platos API"`)
			})

			convey.Convey("And the docs are served", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/docs", http.NoBody))

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(strings.Contains(w.Body.String(), "redoc"), convey.ShouldBeTrue)
			})

			convey.Convey("And the dishes gauge follows the registry", func() {
				updateServiceMetrics(ctx, svc)

				count, err := testutil.GatherAndCount(metrics.GetRegistry(), "platos_api_dishes_total")
				convey.So(err, convey.ShouldBeNil)
				convey.So(count, convey.ShouldEqual, 1)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater runs until cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns without panicking", func() {
				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When the service metrics updater runs before Start", func() {
			svc := newService(config.New(), logger.Nop())
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns without panicking", func() {
				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
					updateServiceMetrics(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})

			convey.Convey("And /metrics carries the custom system gauges only", func() {
				updateSystemMetrics()
				cfg := config.New()
				mux := newMux(context.Background(), cfg, newService(cfg, logger.Nop()), logger.Nop())
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", http.NoBody))

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "platos_api_system_goroutine_count")
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, "go_goroutines")
				convey.So(w.Body.String(), convey.ShouldNotContainSubstring, "process_cpu_seconds_total")
			})
		})
	})
}
