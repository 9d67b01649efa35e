package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/deosjr/parens/lisp"
	"github.com/peterh/liner"
)

const banner = "Welcome to parens, a Go Lisp-ish"

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	l, closer, err := interpreter(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sh := &shell{l: l, out: os.Stdout}
	ln.SetCompleter(sh.complete)

	fmt.Println(banner)
	for {
		src, err := readInput(ln, cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		// Ctrl-C while evaluating cancels this input only
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		sh.handle(ctx, src)
		stop()
	}
}

// readInput keeps prompting while the text so far ends inside an open list
// or string.
func readInput(ln *liner.State, prompt string) (string, error) {
	cont := strings.Repeat(".", len(strings.TrimRight(prompt, " "))) + " "
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), "_") {
			return src, nil
		}
		if _, err := lisp.Multiparse(src); errors.Is(err, lisp.ErrIncomplete) {
			continue
		}
		return src, nil
	}
}
