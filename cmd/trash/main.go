// Command trash is the ambient CLI front end for the toolchain: given a
// script path it parses and executes the file; given none it starts an
// interactive REPL. Grounded on the teacher's Interpreter.Repl()
// (interpreter.go): read input, compile/execute it, print the result or a
// colorized error, loop until EOF — with github.com/peterh/liner standing
// in for the teacher's github.com/bobappleyard/readline (see DESIGN.md for
// why: the same concern appears independently in two other pack repos).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	trash "github.com/TheMartin/trash-lang"
	"github.com/TheMartin/trash-lang/lexer"

	"github.com/TheMartin/trash-lang/ext/mathlib"
	"github.com/TheMartin/trash-lang/ext/strutil"
)

const historyFileName = ".trash_history"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [script]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	switch args := flag.Args(); len(args) {
	case 0:
		runREPL()
	case 1:
		os.Exit(runFile(args[0]))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// globals wires the host-supplied native functions a script or REPL session
// sees: a bare print, plus the sample ext/mathlib and ext/strutil packages
// nested under "math" and "str" objects (spec.md §1: native function
// registration is a host concern; these are a demonstration of it).
func globals() map[string]trash.Value {
	return map[string]trash.Value{
		"print": trash.FunctionValue(printFn{}),
		"math":  trash.ObjectValue(mathlib.New()),
		"str":   trash.ObjectValue(strutil.New()),
	}
}

// printFn implements trash.Callable: print(args...) writes each argument's
// String() form space-separated to stdout, followed by a newline, and
// returns nil — the host native backing spec.md §8's scenario transcripts.
type printFn struct{}

func (printFn) Call(_ *trash.Evaluator, args []trash.Value) (trash.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Println(strings.Join(parts, " "))
	return trash.Nil, nil
}

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("trash: cannot read %s: %v", path, err)
	}
	prog, err := trash.Parse(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	env := trash.NewEnvironment(globals())
	ev := trash.NewEvaluator()
	if err := ev.Execute(prog, env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runREPL() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFileName)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	env := trash.NewEnvironment(globals())
	ev := trash.NewEvaluator()

	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		prog, err := trash.Parse(src)
		if err != nil {
			printREPLError(err)
			continue
		}
		if err := ev.Execute(prog, env); err != nil {
			printREPLError(err)
		}
	}
}

// readStatement accumulates lines from ln until trash.Parse reports either
// success or a failure that isn't just "ran out of input": the heuristic is
// that a parse failure whose reported position coincides with the lexer's
// synthetic EOF token means the statement is merely incomplete (an unclosed
// brace, paren, or a trailing binary operator), so another line is read and
// appended; any other failure is a genuine syntax error to report as-is.
func readStatement(ln *liner.State) (string, bool) {
	var buf strings.Builder
	prompt := "> "
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C: abandon the current statement, start fresh.
			return "", true
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		src := buf.String()
		if _, err := trash.Parse(src); err == nil || !incomplete(src, err) {
			return src, true
		}
		prompt = "... "
	}
}

// incomplete reports whether perr's position is exactly at src's synthetic
// EOF token — i.e. the parser ran out of real tokens rather than hitting a
// genuinely malformed one.
func incomplete(src string, perr error) bool {
	var pe *trash.ParseError
	if !errors.As(perr, &pe) {
		return false
	}
	toks, err := lexer.Lex(src)
	if err != nil || len(toks) == 0 {
		return false
	}
	eof := toks[len(toks)-1]
	return eof.Kind == lexer.EOF && eof.Pos.Line == pe.Line && eof.Pos.Column == pe.Column
}

func printREPLError(err error) {
	fmt.Printf("\033[1;31m%s\033[0m\n", err)
}
