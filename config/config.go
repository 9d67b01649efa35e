// Package config reads the interpreter shell's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no -config flag is
// given.
const EnvVar = "PARENS_CONFIG"

// DefaultFile is looked up in the working directory as a last resort.
const DefaultFile = ".parens.yml"

type Config struct {
	Prompt  string     `yaml:"prompt"`
	History string     `yaml:"history"`
	Preload stringList `yaml:"preload"`
	Modules Modules    `yaml:"modules"`
	Log     Log        `yaml:"log"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

type Modules struct {
	WasmPaths stringList `yaml:"wasm_paths"`
	Native    bool       `yaml:"native"`
}

type Log struct {
	Level string `yaml:"level"`
}

// LogLevel maps the configured level name onto slog.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

func Default() *Config {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".parens_history")
	}
	return &Config{
		Prompt:  "pl> ",
		History: history,
		Modules: Modules{Native: true},
		Log:     Log{Level: "warn"},
	}
}

// ValidationError collects every problem found in a config file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Find picks the config file: explicit if set, then $PARENS_CONFIG, then
// DefaultFile when it exists. It returns "" when there is none.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// Load reads path over the defaults. An empty path yields Default().
// Relative preload and wasm paths are taken relative to the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	dir := filepath.Dir(absPath)
	for i, p := range cfg.Preload {
		cfg.Preload[i] = relativeTo(dir, p)
	}
	for i, p := range cfg.Modules.WasmPaths {
		cfg.Modules.WasmPaths[i] = relativeTo(dir, p)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func relativeTo(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	for i, p := range c.Preload {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d]: %s does not exist", i, p))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// stringList accepts a single string or a sequence, dropping blanks.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var s string
			if err := node.Decode(&s); err != nil {
				return err
			}
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		*l = items
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	}
	return fmt.Errorf("config: expected string or sequence but found %s", value.ShortTag())
}
