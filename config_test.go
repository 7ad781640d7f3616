package typelens

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pablor21/typelens/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResolveMode_FromString(t *testing.T) {
	tests := []struct {
		in      string
		want    ResolveMode
		wantErr bool
	}{
		{"", ResolveModeNone, false},
		{"extras", ResolveModeExtras, false},
		{"annotations", ResolveModeExtras, false},
		{"Extras, Source", ResolveModeFull, false},
		{"full,strict", ResolveModeFull | ResolveModeStrict, false},
		{"extras,bogus", ResolveModeExtras, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveModeNone.FromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMode_String(t *testing.T) {
	assert.Equal(t, "", ResolveModeNone.String())
	assert.Equal(t, "extras,source", ResolveModeFull.String())
	assert.True(t, ResolveModeFull.Has(ResolveModeSource))
	assert.False(t, ResolveModeFull.Has(ResolveModeStrict))
}

func TestConfig_JSON(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Packages = []string{"./examples/starwars/..."}
	cfg.Mode = ResolveModeExtras | ResolveModeStrict

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"extras,strict"`)

	var decoded Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestConfig_YAML(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Packages = []string{"./examples/starwars/models"}
	cfg.Mode = ResolveModeFull

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: extras,source")

	decoded, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestParseConfig_KeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("packages:\n  - ./examples/starwars/**\nmode: source\nlog_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"./examples/starwars/**"}, cfg.Packages)
	assert.Equal(t, ResolveModeSource, cfg.Mode)
	assert.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, 4096, cfg.CacheSize)

	_, err = ParseConfig([]byte("mode: sideways\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typelens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_size: 16\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, ResolveModeDefault, cfg.Mode)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
