package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/deosjr/parens/lisp"
)

// shell interprets one line of input: either a command starting with _ (or
// ? / help) or lisp source handed to Exec.
type shell struct {
	l   lisp.Lisp
	out io.Writer
}

type command struct {
	help string
	run  func(s *shell, ctx context.Context, arg string)
}

var commands = map[string]command{
	"_EXEC": {
		help: "Executes some lisp. This is the default, so simply\n\n    pl> (+ 1 2)\n\nwill execute that line of code.",
		run:  func(s *shell, ctx context.Context, arg string) { s.l.Exec(ctx, s.out, arg) },
	},
	"_LOAD": {
		help: "Load and execute a script from a file.",
		run: func(s *shell, ctx context.Context, arg string) {
			src, err := os.ReadFile(strings.TrimSpace(arg))
			if err != nil {
				fmt.Fprintf(s.out, "_LOAD FAIL: %v\n", err)
				return
			}
			s.l.Exec(ctx, s.out, string(src))
		},
	},
	"_LEX": {
		help: "Just lex a string, resulting in a list of tokens.",
		run: func(s *shell, ctx context.Context, arg string) {
			if err := lexTo(s.out, arg); err != nil {
				fmt.Fprintln(s.out, err)
			}
		},
	},
	"_PARSE": {
		help: "Lex and parse an input string, printing each expression read.",
		run: func(s *shell, ctx context.Context, arg string) {
			if err := parseTo(s.out, arg); err != nil {
				fmt.Fprintln(s.out, err)
			}
		},
	},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *shell) handle(ctx context.Context, line string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch {
	case name == "":
		return
	case name == "?" || name == "help":
		s.help(strings.TrimSpace(arg))
		return
	}
	if cmd, ok := commands[name]; ok {
		cmd.run(s, ctx, arg)
		return
	}
	if strings.HasPrefix(name, "_") {
		fmt.Fprintf(s.out, "*** Unknown syntax: %s\n", line)
		return
	}
	s.l.Exec(ctx, s.out, line)
}

func (s *shell) help(topic string) {
	if topic == "" {
		fmt.Fprintln(s.out, "Documented commands (type help <topic>):")
		fmt.Fprintln(s.out, strings.Join(commandNames(), "  "))
		return
	}
	cmd, ok := commands[topic]
	if !ok {
		fmt.Fprintf(s.out, "*** No help on %s\n", topic)
		return
	}
	fmt.Fprintln(s.out, cmd.help)
}

// complete offers bound symbols and command names matching the word under
// the cursor.
func (s *shell) complete(line string) []string {
	start := strings.LastIndexAny(line, " ()") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}
	var out []string
	if start == 0 {
		for _, name := range commandNames() {
			if strings.HasPrefix(name, word) {
				out = append(out, name)
			}
		}
	}
	for _, sym := range s.l.Env.Symbols() {
		if strings.HasPrefix(string(sym), word) {
			out = append(out, prefix+string(sym))
		}
	}
	return out
}

func lexTo(w io.Writer, src string) error {
	tokens, err := lisp.Lex(src)
	if err != nil {
		return err
	}
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	fmt.Fprintf(w, "[%s]\n", strings.Join(quoted, ", "))
	return nil
}

func parseTo(w io.Writer, src string) error {
	exprs, err := lisp.Multiparse(src)
	if err != nil {
		return err
	}
	for _, e := range exprs {
		fmt.Fprintln(w, e)
	}
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
