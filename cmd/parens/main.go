package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/deosjr/parens/config"
	"github.com/deosjr/parens/lisp"
	"github.com/deosjr/parens/modules"
	"github.com/deosjr/parens/wasm"
)

const appName = "parens"

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cmd, args := "repl", os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "repl":
		os.Exit(cmdRepl(args))
	case "run":
		os.Exit(cmdRun(args))
	case "lex":
		os.Exit(cmdLex(args))
	case "parse":
		os.Exit(cmdParse(args))
	case "version":
		fmt.Println(appName, version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %[1]s [repl] [-config file]          Start the interactive shell.
  %[1]s run [-config file] file...     Evaluate files, printing R: or NR~ per form.
  %[1]s lex source                     Print the tokens of source.
  %[1]s parse source                   Print the expressions read from source.
  %[1]s version                        Print the version.
`, appName)
}

// interpreter builds a session from the config: logger, native and wasm
// modules, and preloaded files. The returned func releases the wasm runtime.
func interpreter(ctx context.Context, cfg *config.Config) (lisp.Lisp, func(), error) {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	l := lisp.New(lisp.WithLogger(log))
	if cfg.Modules.Native {
		modules.Load(l)
	}
	closer := func() {}
	if len(cfg.Modules.WasmPaths) > 0 {
		r := wasm.Load(ctx, l, log, cfg.Modules.WasmPaths...)
		closer = func() { r.Close(ctx) }
	}
	for _, file := range cfg.Preload {
		log.Debug("preloading", slog.String("file", file))
		if err := l.LoadFile(file); err != nil {
			closer()
			return lisp.Lisp{}, nil, err
		}
	}
	return l, closer, nil
}

func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	path := fs.String("config", "", "config file (default $"+config.EnvVar+" or "+config.DefaultFile+")")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config.Load(config.Find(*path))
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-config file] file...\n", appName)
		return 2
	}
	ctx := context.Background()
	l, closer, err := interpreter(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer()
	for _, file := range fs.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
			return 1
		}
		l.Exec(ctx, os.Stdout, string(src))
	}
	return 0
}

func cmdLex(args []string) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := lexTo(os.Stdout, joinArgs(fs.Args())); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func cmdParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := parseTo(os.Stdout, joinArgs(fs.Args())); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
