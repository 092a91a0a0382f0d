package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/latword/internal/config"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/expand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latword.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, expand.Unbounded, cfg.MaxLength)
	assert.Equal(t, "output", cfg.MatchSide)
	assert.True(t, math.IsInf(cfg.Beam, 1))
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
delimiters: [3, 4]
max_length: 12
match_side: input
acoustic_scale: 0.1
beam: 8
workers: 4
log_format: json
redis:
  addr: localhost:6379
  prefix: asr
  lock_ttl: 5s
`)
	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4}, cfg.Delimiters)
	assert.Equal(t, 12, cfg.MaxLength)
	assert.Equal(t, 0.1, cfg.AcousticScale)
	assert.Equal(t, 1.0, cfg.GraphScale, "unset keys keep their defaults")
	assert.Equal(t, 8.0, cfg.Beam)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "asr", cfg.Redis.Prefix)
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL)

	ec, err := cfg.Expand()
	require.NoError(t, err)
	assert.Equal(t, []domain.Label{3, 4}, ec.Delimiters.Labels())
	assert.Equal(t, domain.MatchInput, ec.MatchSide)
	assert.Equal(t, 12, ec.MaxLength)
}

func TestLoad_OverridesWin(t *testing.T) {
	path := writeConfig(t, "delimiters: [3, 4, 5]\nbeam: inf\nredis:\n  addr: a:1\n")
	cfg, err := config.Load(path, map[string]any{
		"delimiters": "7 8",
		"max_length": "6",
		"redis.db":   2,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{7, 8}, cfg.Delimiters)
	assert.Equal(t, 6, cfg.MaxLength)
	assert.True(t, math.IsInf(cfg.Beam, 1))
	assert.Equal(t, "a:1", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"Epsilon Delimiter", map[string]any{"delimiters": "0 3"}},
		{"Negative Max Length", map[string]any{"max_length": -1}},
		{"Unknown Side", map[string]any{"match_side": "both"}},
		{"Zero Scale", map[string]any{"acoustic_scale": 0}},
		{"Negative Beam", map[string]any{"beam": -2}},
		{"No Workers", map[string]any{"workers": 0}},
		{"Bad Level", map[string]any{"log_level": "loud"}},
		{"Unknown Key", map[string]any{"delimeters": "3"}},
		{"Bad Label", map[string]any{"delimiters": "3 x"}},
		{"Label Beyond Int32", map[string]any{"delimiters": "4294967299"}},
		{"Label List Beyond Int32", map[string]any{"delimiters": []any{4294967299}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load("", tt.overrides)
			assert.Error(t, err)
		})
	}
}

func TestValidate_EpsilonIsSentinel(t *testing.T) {
	cfg := config.Default()
	cfg.Delimiters = []int{0}
	assert.ErrorIs(t, cfg.Validate(), domain.ErrEpsilonDelimiter)
}

func TestExpand_RejectsOutOfRangeDelimiter(t *testing.T) {
	cfg := config.Default()
	cfg.Delimiters = []int{math.MaxInt32 + 4}
	assert.Error(t, cfg.Validate())

	_, err := cfg.Expand()
	assert.Error(t, err)
}
