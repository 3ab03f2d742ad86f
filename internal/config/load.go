package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

const (
	appDirName     = "shelf"
	configFileName = "config.yaml"
	fallbackTheme  = "dark"
)

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if cfg.UI.Theme == "" || len(cfg.UI.Themes) == 0 {
		return cfg, fmt.Errorf("default config is missing required theme defaults")
	}
	return cfg, nil
}

// DefaultPath returns where shelf looks for a user config when none is
// given: $XDG_CONFIG_HOME/shelf/config.yaml, else ~/.config/shelf/config.yaml.
func DefaultPath() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); dir != "" {
		return filepath.Join(dir, appDirName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDirName, configFileName), nil
}

// ResolvePath picks the config file to read. An explicit path is returned
// as is; otherwise the default path is used only when the file exists. An
// empty result means defaults only.
func ResolvePath(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}
	p, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat config %s: %w", p, err)
	}
	return p, nil
}

// Load returns the defaults with the file at path merged on top. An empty
// path loads the defaults only. The result is validated.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if cfg, err = Merge(cfg, data); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge decodes data over base. Scalars present in data win; themes are
// merged color by color so a user theme only needs the colors it changes.
// A theme name unknown to base starts from the dark palette.
func Merge(base Config, data []byte) (Config, error) {
	baseThemes := base.UI.Themes
	out := base
	out.UI.Themes = nil
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("decode: %w", err)
	}

	merged := make(map[string]ThemeConfig, len(baseThemes)+len(out.UI.Themes))
	for name, th := range baseThemes {
		merged[name] = th
	}
	for name, th := range out.UI.Themes {
		start, ok := merged[name]
		if !ok {
			start = baseThemes[fallbackTheme]
		}
		merged[name] = start.Merge(th)
	}
	out.UI.Themes = merged
	return out, nil
}

// ThemeNames lists the configured palettes in order.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.UI.Themes))
	for name := range c.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedTheme returns the palette named by ui.theme.
func (c Config) SelectedTheme() (ThemeConfig, error) {
	th, ok := c.UI.Themes[c.UI.Theme]
	if !ok {
		return ThemeConfig{}, &ThemeError{Selected: c.UI.Theme, Available: c.ThemeNames()}
	}
	return th, nil
}

// Encode renders the config as yaml, json or toml.
func (c Config) Encode(format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case "json":
		out, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "toml":
		out, err := toml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q (use yaml, json or toml)", ErrUnknownFormat, format)
	}
}
