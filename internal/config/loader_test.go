package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/platos/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PLATOS_APP_NAME", "Trattoria")
			_ = os.Setenv("PLATOS_HOST", "127.0.0.1")
			_ = os.Setenv("PLATOS_PORT", "9000")
			_ = os.Setenv("PLATOS_DEBUG", "false")
			_ = os.Setenv("PLATOS_SEED", "false")
			_ = os.Setenv("PLATOS_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AppName, convey.ShouldEqual, "Trattoria")
				convey.So(cfg.Addr(), convey.ShouldEqual, "127.0.0.1:9000")
				convey.So(cfg.Debug, convey.ShouldBeFalse)
				convey.So(cfg.Seed, convey.ShouldBeFalse)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.AppVersion, convey.ShouldEqual, "0.1.0")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
app_name: "From File"
app_version: "2.0.0"
port: 9090
log_level: warn
debug: false
`)
			_ = os.Setenv("PLATOS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AppName, convey.ShouldEqual, "From File")
				convey.So(cfg.AppVersion, convey.ShouldEqual, "2.0.0")
				convey.So(cfg.Port, convey.ShouldEqual, 9090)
				convey.So(cfg.EffectiveLogLevel(), convey.ShouldEqual, "warn")
				convey.So(cfg.Host, convey.ShouldEqual, "0.0.0.0")
				convey.So(cfg.Seed, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
port: 9090
app_name: "From File"
`)
			_ = os.Setenv("PLATOS_CONFIG", tmpFile)
			_ = os.Setenv("PLATOS_PORT", "8081")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, 8081)
				convey.So(cfg.AppName, convey.ShouldEqual, "From File")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("PLATOS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PLATOS_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the port is out of range", func() {
			_ = os.Setenv("PLATOS_PORT", "70000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "port must be in")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the port is not a number", func() {
			_ = os.Setenv("PLATOS_PORT", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("PLATOS_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the app name is blank", func() {
			_ = os.Setenv("PLATOS_APP_NAME", "  ")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, name := range []string{
		"PLATOS_CONFIG",
		"PLATOS_APP_NAME",
		"PLATOS_APP_DESCRIPTION",
		"PLATOS_APP_VERSION",
		"PLATOS_HOST",
		"PLATOS_PORT",
		"PLATOS_DEBUG",
		"PLATOS_LOG_LEVEL",
		"PLATOS_LOG_FORMAT",
		"PLATOS_SEED",
	} {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "platos-config-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}
