package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/compiler_errors"
	"github.com/kievzenit/strata/internal/emitter"
	"github.com/kievzenit/strata/internal/interpreter"
	"github.com/kievzenit/strata/internal/lexer"
	"github.com/kievzenit/strata/internal/parser"
	"github.com/kievzenit/strata/internal/repl"
	"github.com/kievzenit/strata/internal/semantic_analyzer"
)

const (
	defaultInput   = "main.str"
	defaultCOutput = "output.c"
	defaultLLVMOut = "output.ll"
)

type config struct {
	input     string
	output    string
	emit      string
	run       bool
	dumpAST   bool
	intLits   bool
	tagged    bool
	debugMode bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet, w io.Writer) func() {
	return func() {
		fmt.Fprintln(w, "Usage:")
		fmt.Fprintln(w, "  strata [flags] [file]   check, optionally run, and compile file (default "+defaultInput+")")
		fmt.Fprintln(w, "  strata repl [flags]     start an interactive session")
		fmt.Fprintln(w, "Flags:")
		fs.PrintDefaults()
	}
}

// run is main without the process exit. Exit codes: 0 success, 1 a failed
// stage, 2 bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "repl" {
		return runRepl(args[1:], stderr)
	}

	cfg, ok := parseFlags(args, stderr)
	if !ok {
		return 2
	}

	return compile(cfg, stdout, stderr)
}

func parseFlags(args []string, stderr io.Writer) (config, bool) {
	var cfg config

	fs := flag.NewFlagSet("strata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs, stderr)

	fs.StringVar(&cfg.output, "o", "", "output path (default "+defaultCOutput+", or "+defaultLLVMOut+" with -emit llvm)")
	fs.StringVar(&cfg.emit, "emit", "c", "backend: c, llvm or none")
	fs.BoolVar(&cfg.run, "run", false, "execute the program with the interpreter")
	fs.BoolVar(&cfg.dumpAST, "dump-ast", false, "print the parsed AST")
	fs.BoolVar(&cfg.intLits, "int-literals", false, "infer digit-only literals as int")
	fs.BoolVar(&cfg.tagged, "tagged", false, "run with tagged values instead of the numeric encoding")
	fs.BoolVar(&cfg.debugMode, "debug", false, "trace each stage on stderr")

	if err := fs.Parse(args); err != nil {
		return config{}, false
	}

	switch cfg.emit {
	case "c", "llvm", "none":
	default:
		fmt.Fprintf(stderr, "unknown backend %q: want c, llvm or none\n", cfg.emit)
		return config{}, false
	}

	switch fs.NArg() {
	case 0:
		cfg.input = defaultInput
	case 1:
		cfg.input = fs.Arg(0)
	default:
		fmt.Fprintln(stderr, "expected at most one source file")
		return config{}, false
	}

	if cfg.output == "" {
		cfg.output = defaultCOutput
		if cfg.emit == "llvm" {
			cfg.output = defaultLLVMOut
		}
	}

	return cfg, true
}

func runRepl(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	intLits := fs.Bool("int-literals", false, "infer digit-only literals as int")
	tagged := fs.Bool("tagged", false, "start with tagged values")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	options := repl.Options{IntegerLiterals: *intLits}
	if *tagged {
		options.ValueMode = interpreter.TaggedMode
	}
	return repl.Run(options)
}

type pipeline struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer
	eh     compiler_errors.ErrorHandler
}

func (p *pipeline) printDebug(format string, args ...any) {
	if !p.cfg.debugMode {
		return
	}
	fmt.Fprintf(p.stderr, "[DEBUG] "+format+"\n", args...)
}

func (p *pipeline) fail(err error) int {
	p.eh.AddError(compiler_errors.FromError(err))
	p.eh.Report()
	return 1
}

func compile(cfg config, stdout, stderr io.Writer) int {
	p := &pipeline{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		eh:     compiler_errors.NewErrorHandler(stderr),
	}

	p.printDebug("reading %s", cfg.input)
	source, err := os.ReadFile(cfg.input)
	if err != nil {
		return p.fail(fmt.Errorf("cannot read %s: %w", cfg.input, err))
	}

	tokens := lexer.NewLexer(source).Tokenize()
	p.printDebug("lexed %d tokens", len(tokens))
	for _, token := range tokens {
		p.printDebug("token %q at %d:%d", token.Text, token.Location.Line, token.Location.Column)
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return p.fail(err)
	}
	p.printDebug("parsed %d statements", len(program.Stmts))

	if cfg.dumpAST {
		fmt.Fprintln(stdout, ast.Dump(program))
	}

	analyzer := semantic_analyzer.NewSemanticAnalyzer(semantic_analyzer.Options{
		IntegerLiterals: cfg.intLits,
	})
	diagnostics := analyzer.Analyze(program)
	p.printDebug("type check found %d diagnostics", len(diagnostics))
	if len(diagnostics) > 0 {
		for _, diagnostic := range diagnostics {
			p.eh.AddError(diagnostic)
		}
		p.eh.Report()
		return 1
	}

	if cfg.run {
		mode := interpreter.NumericMode
		if cfg.tagged {
			mode = interpreter.TaggedMode
		}
		p.printDebug("running in %s mode", mode)

		interp := interpreter.New(
			interpreter.WithOutput(stdout),
			interpreter.WithValueMode(mode),
		)
		if err := interp.Run(program); err != nil {
			return p.fail(err)
		}
	}

	return p.emit(program)
}

func (p *pipeline) emit(program *ast.Program) int {
	var code, label string

	switch p.cfg.emit {
	case "none":
		return 0
	case "c":
		code, label = emitter.GenerateC(program), "C code"
	case "llvm":
		ir, err := emitter.EmitLLVM(program)
		if err != nil {
			return p.fail(err)
		}
		code, label = ir, "LLVM IR"
	}
	p.printDebug("emitted %d lines of %s", strings.Count(code, "\n"), label)

	if err := os.WriteFile(p.cfg.output, []byte(code), 0o644); err != nil {
		return p.fail(fmt.Errorf("cannot write %s: %w", p.cfg.output, err))
	}

	fmt.Fprintf(p.stdout, "%s generated: %s\n", label, p.cfg.output)
	return 0
}
