package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/compiler_errors"
	"github.com/kievzenit/strata/internal/emitter"
	"github.com/kievzenit/strata/internal/interpreter"
	"github.com/kievzenit/strata/internal/parser"
	"github.com/kievzenit/strata/internal/semantic_analyzer"
)

const helpText = `Commands:
  :help              show this help
  :quit              leave the REPL
  :env               list global bindings
  :ast <source>      print the AST of <source> without running it
  :c                 print C for everything run so far
  :mode [numeric|tagged]
                     show or switch the runtime value mode
  :reset             forget every binding
  :load "<path>"     run a source file in this session
`

type Options struct {
	IntegerLiterals bool
	ValueMode       interpreter.ValueMode

	// Random overrides the interpreter's random source when set.
	Random func() float64
}

// DiagnosticsError carries every type diagnostic of a rejected chunk.
type DiagnosticsError []*semantic_analyzer.TypeDiagnostic

func (d DiagnosticsError) Error() string {
	messages := make([]string, len(d))
	for i, diagnostic := range d {
		messages[i] = diagnostic.String()
	}
	return strings.Join(messages, "\n")
}

// Session keeps the checker and interpreter state between chunks.
type Session struct {
	out    io.Writer
	errOut io.Writer

	analyzer    *semantic_analyzer.SemanticAnalyzer
	interpreter *interpreter.Interpreter

	history []ast.Stmt
}

func NewSession(out, errOut io.Writer, options Options) *Session {
	interpreterOptions := []interpreter.Option{
		interpreter.WithOutput(out),
		interpreter.WithValueMode(options.ValueMode),
	}
	if options.Random != nil {
		interpreterOptions = append(interpreterOptions, interpreter.WithRandom(options.Random))
	}

	return &Session{
		out:    out,
		errOut: errOut,

		analyzer: semantic_analyzer.NewSemanticAnalyzer(semantic_analyzer.Options{
			IntegerLiterals: options.IntegerLiterals,
		}),
		interpreter: interpreter.New(interpreterOptions...),
	}
}

// HandleLine runs a command or a source chunk and reports any error. It
// returns true when the session should end.
func (s *Session) HandleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, ":") {
		cmd, err := ParseCommand(trimmed)
		if err != nil {
			fmt.Fprintf(s.errOut, "ERROR: invalid command: %s\n", err)
			return false
		}

		quit, err := s.Execute(cmd)
		if err != nil {
			s.report(err)
		}
		return quit
	}

	if err := s.Eval(line); err != nil {
		s.report(err)
	}
	return false
}

// Eval parses, checks and runs one chunk. A chunk with type diagnostics is
// not run. The value of a trailing expression statement is echoed.
func (s *Session) Eval(src string) error {
	program, err := parser.ParseSource(src)
	if err != nil {
		return err
	}

	if diagnostics := s.analyzer.Analyze(program); len(diagnostics) > 0 {
		return DiagnosticsError(diagnostics)
	}

	if err := s.interpreter.Run(program); err != nil {
		return err
	}
	s.history = append(s.history, program.Stmts...)

	if value, ok := s.interpreter.LastValue(); ok && echoes(program) {
		fmt.Fprintln(s.out, value.String())
	}

	return nil
}

// echoes is true when the chunk ends in an expression statement that is not
// an io call, which prints on its own.
func echoes(program *ast.Program) bool {
	if len(program.Stmts) == 0 {
		return false
	}

	exprStmt, ok := program.Stmts[len(program.Stmts)-1].(*ast.ExprStmt)
	if !ok {
		return false
	}
	if call, ok := exprStmt.Expr.(*ast.CallExpr); ok && call.Module == "io" {
		return false
	}
	return true
}

func (s *Session) Execute(cmd *Command) (bool, error) {
	switch cmd.Name {
	case "quit", "q", "exit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, helpText)
	case "env":
		s.printEnv()
	case "ast":
		program, err := parser.ParseSource(cmd.Raw)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, ast.Dump(program))
	case "c":
		fmt.Fprint(s.out, emitter.GenerateC(&ast.Program{Stmts: s.history}))
	case "mode":
		return false, s.switchMode(cmd.Args)
	case "reset":
		s.analyzer.Reset()
		s.interpreter.Reset()
		s.history = nil
		fmt.Fprintln(s.out, "session reset")
	case "load":
		if len(cmd.Args) != 1 {
			return false, errors.New(`usage: :load "<path>"`)
		}
		data, err := os.ReadFile(cmd.Args[0])
		if err != nil {
			return false, err
		}
		return false, s.Eval(string(data))
	default:
		return false, fmt.Errorf("unknown command: :%s (type :help)", cmd.Name)
	}

	return false, nil
}

func (s *Session) switchMode(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "mode: %s\n", s.interpreter.ValueMode())
		return nil
	}

	switch args[0] {
	case "numeric":
		s.interpreter.SetValueMode(interpreter.NumericMode)
	case "tagged":
		s.interpreter.SetValueMode(interpreter.TaggedMode)
	default:
		return fmt.Errorf("unknown mode: %s (want numeric or tagged)", args[0])
	}

	fmt.Fprintf(s.out, "mode: %s\n", s.interpreter.ValueMode())
	return nil
}

func (s *Session) printEnv() {
	globals := s.interpreter.Globals()
	if len(globals) == 0 {
		fmt.Fprintln(s.out, "(no bindings)")
		return
	}

	for _, binding := range globals {
		keyword := "let"
		if binding.Mutable {
			keyword = "var"
		}

		if binding.Type != nil {
			fmt.Fprintf(s.out, "%s %s: %s = %s\n", keyword, binding.Name, binding.Type.String(), binding.Value.String())
			continue
		}
		fmt.Fprintf(s.out, "%s %s = %s\n", keyword, binding.Name, binding.Value.String())
	}
}

func (s *Session) report(err error) {
	var diagnostics DiagnosticsError
	if errors.As(err, &diagnostics) {
		for _, diagnostic := range diagnostics {
			fmt.Fprint(s.errOut, compiler_errors.Format(diagnostic))
		}
		return
	}

	fmt.Fprint(s.errOut, compiler_errors.Format(compiler_errors.FromError(err)))
}
