package typelens

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pablor21/typelens/logger"
	"gopkg.in/yaml.v3"
)

type ResolveMode uint8

const (
	ResolveModeNone   ResolveMode = 0
	ResolveModeExtras ResolveMode = 1 << (iota - 1) // Keep Annotated/Required/NotRequired
	ResolveModeStrict                               // Parameters must be annotated
	ResolveModeSource                               // Resolve from Go source instead of reflection

	// Predefined combinations
	ResolveModeDefault = ResolveModeNone
	ResolveModeFull    = ResolveModeExtras | ResolveModeSource
)

var resolveModeNames = []struct {
	mode ResolveMode
	name string
}{
	{ResolveModeExtras, "extras"},
	{ResolveModeStrict, "strict"},
	{ResolveModeSource, "source"},
}

func (m ResolveMode) String() string {
	var names []string
	for _, n := range resolveModeNames {
		if m.Has(n.mode) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

func (m ResolveMode) Has(mode ResolveMode) bool {
	return m&mode == mode
}

// parse a string separated by commas into a ResolveMode
// e.g. "extras,source" -> ResolveModeExtras | ResolveModeSource
func (m ResolveMode) FromString(str string) (ResolveMode, error) {
	for _, v := range strings.Split(strings.ToLower(str), ",") {
		v = strings.TrimSpace(v)
		switch v {
		case "":
			continue
		case "extras", "annotations":
			m |= ResolveModeExtras
		case "strict":
			m |= ResolveModeStrict
		case "source":
			m |= ResolveModeSource
		case "full":
			m |= ResolveModeFull
		default:
			return m, fmt.Errorf("unknown resolve mode %q", v)
		}
	}
	return m, nil
}

func (m ResolveMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ResolveMode) UnmarshalText(text []byte) error {
	parsed, err := ResolveModeNone.FromString(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m ResolveMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *ResolveMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}

func (m ResolveMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *ResolveMode) UnmarshalYAML(value *yaml.Node) error {
	return m.UnmarshalText([]byte(value.Value))
}

type Config struct {
	// Packages preloaded by the source resolver (see hints.PackageGlob)
	Packages []string        `json:"packages" yaml:"packages"`
	Dir      string          `json:"dir,omitempty" yaml:"dir,omitempty"`
	Mode     ResolveMode     `json:"mode" yaml:"mode"`
	LogLevel logger.LogLevel `json:"log_level" yaml:"log_level"`
	// CacheSize bounds the view cache, 0 means unbounded
	CacheSize int `json:"cache_size" yaml:"cache_size"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Mode:      ResolveModeDefault,
		LogLevel:  logger.LogLevelInfo,
		CacheSize: 4096,
	}
}

// LoadConfig reads a YAML configuration file. Missing keys keep the values
// of NewDefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
