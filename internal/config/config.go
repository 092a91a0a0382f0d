// Package config loads latword settings from a YAML file and command-line
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/expand"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Redis holds the connection settings for the shared symbol store.
type Redis struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	LockTTL  time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

// Config is the full set of driver settings.
type Config struct {
	Delimiters    []int   `mapstructure:"delimiters" yaml:"delimiters"`
	MaxLength     int     `mapstructure:"max_length" yaml:"max_length"`
	MatchSide     string  `mapstructure:"match_side" yaml:"match_side"`
	AcousticScale float64 `mapstructure:"acoustic_scale" yaml:"acoustic_scale"`
	GraphScale    float64 `mapstructure:"graph_scale" yaml:"graph_scale"`
	Beam          float64 `mapstructure:"beam" yaml:"beam"`
	SaveSymbols   string  `mapstructure:"save_symbols" yaml:"save_symbols"`
	Workers       int     `mapstructure:"workers" yaml:"workers"`
	LogLevel      string  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat     string  `mapstructure:"log_format" yaml:"log_format"`
	Redis         Redis   `mapstructure:"redis" yaml:"redis"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		MaxLength:     expand.Unbounded,
		MatchSide:     domain.MatchOutput.String(),
		AcousticScale: 1,
		GraphScale:    1,
		Beam:          math.Inf(1),
		Workers:       1,
		LogLevel:      "info",
		LogFormat:     string(logging.FormatText),
		Redis: Redis{
			Prefix:  "latword",
			LockTTL: 30 * time.Second,
		},
	}
}

// Load reads path (skipped when empty or missing) and then applies
// overrides. Override keys may be dotted ("redis.addr").
func Load(path string, overrides map[string]any) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if len(overrides) > 0 {
		if err := decode(nest(overrides), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func decode(input map[string]any, out *Config) error {
	// mapstructure writes into an existing slice element by element.
	if _, ok := input["delimiters"]; ok {
		out.Delimiters = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			labelListHook,
			mapstructure.StringToTimeDurationHookFunc(),
			infinityHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// labelListHook accepts "3 4" (the command-line form) for integer lists.
func labelListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.Int {
		return data, nil
	}
	fields := strings.Fields(data.(string))
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid label %q", f)
		}
		out = append(out, int(n))
	}
	return out, nil
}

// infinityHook lets "inf" mean an unlimited beam.
func infinityHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "inf", "+inf", "infinity", ".inf":
		return math.Inf(1), nil
	}
	return data, nil
}

// nest expands dotted keys into nested maps.
func nest(flat map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range flat {
		parts := strings.Split(k, ".")
		m := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[p] = next
			}
			m = next
		}
		m[parts[len(parts)-1]] = v
	}
	return out
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	for _, d := range c.Delimiters {
		if d == int(domain.Epsilon) {
			errs = append(errs, domain.ErrEpsilonDelimiter)
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("negative delimiter %d", d))
		} else if d > math.MaxInt32 {
			errs = append(errs, fmt.Errorf("delimiter %d is out of range", d))
		}
	}
	if c.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("max_length must be non-negative, got %d", c.MaxLength))
	}
	if _, err := domain.ParseMatchSide(c.MatchSide); err != nil {
		errs = append(errs, err)
	}
	if c.AcousticScale <= 0 || c.GraphScale <= 0 {
		errs = append(errs, fmt.Errorf("scales must be positive, got graph=%g acoustic=%g", c.GraphScale, c.AcousticScale))
	}
	if c.Beam < 0 || math.IsNaN(c.Beam) {
		errs = append(errs, fmt.Errorf("beam must be non-negative, got %g", c.Beam))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Expand converts the settings into expansion parameters.
func (c Config) Expand() (expand.Config, error) {
	labels := make([]domain.Label, len(c.Delimiters))
	for i, d := range c.Delimiters {
		if d < 0 || d > math.MaxInt32 {
			return expand.Config{}, fmt.Errorf("delimiter %d is out of range", d)
		}
		labels[i] = domain.Label(d)
	}
	delims, err := domain.NewDelimiterSet(labels...)
	if err != nil {
		return expand.Config{}, err
	}
	side, err := domain.ParseMatchSide(c.MatchSide)
	if err != nil {
		return expand.Config{}, err
	}
	return expand.Config{Delimiters: delims, MaxLength: c.MaxLength, MatchSide: side}, nil
}

// Logger builds the application logger described by the settings.
func (c Config) Logger() *slog.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	return logging.New(level, format)
}
