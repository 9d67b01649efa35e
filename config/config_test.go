package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "prelude.lisp", "(define r 10)")
	path := write(t, dir, "parens.yml", `
prompt: "> "
preload: prelude.lisp
modules:
  wasm_paths: [wasm, /opt/wasm]
  native: false
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "> " {
		t.Errorf("prompt %q", cfg.Prompt)
	}
	if cfg.Modules.Native {
		t.Error("native modules still enabled")
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "prelude.lisp")}, []string(cfg.Preload)); diff != "" {
		t.Errorf("preload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "wasm"), "/opt/wasm"}, []string(cfg.Modules.WasmPaths)); diff != "" {
		t.Errorf("wasm_paths mismatch (-want +got):\n%s", diff)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("level %v", cfg.LogLevel())
	}
	// unset fields keep their defaults
	if cfg.History != Default().History {
		t.Errorf("history %q", cfg.History)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "pl> " || !cfg.Modules.Native || cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	empty := write(t, t.TempDir(), "empty.yml", "")
	if _, err := Load(empty); err != nil {
		t.Errorf("empty file: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	for i, tt := range []struct {
		content string
		want    string
	}{
		{content: "promt: x\n", want: "field promt not found"},
		{content: "prompt: [\n", want: "parse"},
		{content: "prompt: \"\"\n", want: "prompt must not be empty"},
		{content: "log:\n  level: loud\n", want: `log.level "loud"`},
		{content: "preload: [missing.lisp]\n", want: "preload[0]"},
	} {
		path := write(t, dir, "bad.yml", tt.content)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%d) got %v want %q", i, err, tt.want)
		}
	}

	path := write(t, dir, "multi.yml", "prompt: \"\"\nlog:\n  level: loud\n")
	_, err := Load(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Issues) != 2 {
		t.Errorf("got %v want two validation issues", err)
	}

	if _, err := Load(filepath.Join(dir, "nope.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v want not exist", err)
	}
}

func TestFind(t *testing.T) {
	t.Setenv(EnvVar, "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	if got := Find(""); got != "" {
		t.Errorf("got %q want none", got)
	}
	write(t, ".", DefaultFile, "")
	if got := Find(""); got != DefaultFile {
		t.Errorf("got %q want %s", got, DefaultFile)
	}
	t.Setenv(EnvVar, "/etc/parens.yml")
	if got := Find(""); got != "/etc/parens.yml" {
		t.Errorf("got %q want env path", got)
	}
	if got := Find("flag.yml"); got != "flag.yml" {
		t.Errorf("got %q want flag path", got)
	}
}
