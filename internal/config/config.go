// Package config loads service and planner settings from a YAML file with
// HAZARDPLAN_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"hazardplan/internal/domain/hazard"

	"gopkg.in/yaml.v3"
)

const envPrefix = "HAZARDPLAN_"

type Config struct {
	Server  Server        `yaml:"server"`
	Log     Log           `yaml:"log"`
	Planner hazard.Config `yaml:"planner"`
	Rules   hazard.Rules  `yaml:"rules"`
}

type Server struct {
	Addr        string `yaml:"addr"`
	DBDSN       string `yaml:"db_dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
	DemoActorID string `yaml:"demo_actor_id"`
	CORSOrigin  string `yaml:"cors_origin"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			AutoMigrate: true,
			DemoActorID: "demo-actor",
			CORSOrigin:  "*",
		},
		Log:     Log{Level: "info", Format: "json"},
		Planner: hazard.DefaultConfig(),
		Rules:   hazard.DefaultRules(),
	}
}

// Load reads path over the defaults, then applies environment overrides. An
// empty path skips the file. Kinds listed in the file are merged into the
// default kind registry.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	cfg.Rules.Kinds = normalizeKinds(cfg.Rules.Kinds)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return err
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log format %q", hazard.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", hazard.ErrInvalidConfig, l.Level)
	}
	return level, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = stringEnv("ADDR", cfg.Server.Addr)
	cfg.Server.DBDSN = stringEnv("DB_DSN", cfg.Server.DBDSN)
	cfg.Server.AutoMigrate = boolEnv("AUTO_MIGRATE", cfg.Server.AutoMigrate)
	cfg.Server.DemoActorID = stringEnv("DEMO_ACTOR_ID", cfg.Server.DemoActorID)
	cfg.Server.CORSOrigin = stringEnv("CORS_ORIGIN", cfg.Server.CORSOrigin)
	cfg.Log.Level = stringEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = stringEnv("LOG_FORMAT", cfg.Log.Format)

	p := &cfg.Planner
	p.MayTapReservesMidHazard = boolEnv("MAY_TAP_RESERVES_MID_HAZARD", p.MayTapReservesMidHazard)
	p.MayUsePartialReserves = boolEnv("MAY_USE_PARTIAL_RESERVES", p.MayUsePartialReserves)
	p.PauseSpamSlackFrames = intEnv("PAUSE_SPAM_SLACK_FRAMES", p.PauseSpamSlackFrames)
	p.ManualRefillSlackEnergy = intEnv("MANUAL_REFILL_SLACK_ENERGY", p.ManualRefillSlackEnergy)
	p.PauseTimingSlackFrames = intEnv("PAUSE_TIMING_SLACK_FRAMES", p.PauseTimingSlackFrames)
	p.DoubleHitIFrames = intEnv("DOUBLE_HIT_IFRAMES", p.DoubleHitIFrames)
}

func normalizeKinds(kinds map[string]hazard.Kind) map[string]hazard.Kind {
	out := make(map[string]hazard.Kind, len(kinds))
	for name, k := range kinds {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		out[key] = k
	}
	return out
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
