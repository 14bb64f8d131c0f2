package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/javy001/trainingplanner/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BridgeName, convey.ShouldEqual, "Health")
				convey.So(cfg.LaunchImportDays, convey.ShouldEqual, 7)
				convey.So(cfg.DurationTolerance, convey.ShouldEqual, 0.05)
				convey.So(cfg.DistanceToleranceMiles, convey.ShouldEqual, 0.05)
				convey.So(cfg.StoreBackend, convey.ShouldEqual, "memory")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TP_ADDR", ":9090")
			_ = os.Setenv("TP_SOURCE_URL", "http://bridge.local")
			_ = os.Setenv("TP_LAUNCH_IMPORT_DAYS", "30")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SourceURL, convey.ShouldEqual, "http://bridge.local")
				convey.So(cfg.LaunchImportDays, convey.ShouldEqual, 30)
				convey.So(cfg.BridgeName, convey.ShouldEqual, "Health")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
source_url: "http://bridge:9000"
bridge_name: "HealthKit"
launch_import_days: 14
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.SourceURL, convey.ShouldEqual, "http://bridge:9000")
				convey.So(cfg.BridgeName, convey.ShouldEqual, "HealthKit")
				convey.So(cfg.LaunchImportDays, convey.ShouldEqual, 14)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
launch_import_days: 14
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TP_CONFIG", tmpFile)
			_ = os.Setenv("TP_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.LaunchImportDays, convey.ShouldEqual, 14)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TP_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TP_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the postgres backend is selected without a DSN", func() {
			_ = os.Setenv("TP_STORE_BACKEND", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an unknown store backend is selected", func() {
			_ = os.Setenv("TP_STORE_BACKEND", "etcd")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative launch window", func() {
			_ = os.Setenv("TP_LAUNCH_IMPORT_DAYS", "-3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"TP_CONFIG",
		"TP_ADDR",
		"TP_SOURCE_URL",
		"TP_BRIDGE_NAME",
		"TP_LAUNCH_IMPORT_DAYS",
		"TP_DURATION_TOLERANCE",
		"TP_DISTANCE_TOLERANCE_MILES",
		"TP_STORE_BACKEND",
		"TP_POSTGRES_DSN",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "tp-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
