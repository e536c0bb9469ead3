package repl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kievzenit/strata/internal/parser"
	"github.com/peterh/liner"
)

const (
	banner      = "Strata REPL. Type :help for commands, :quit to exit."
	promptMain  = "strata> "
	promptCont  = "...> "
	historyFile = ".strata_history"
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

// Run starts an interactive session on the terminal and returns the exit
// code.
func Run(options Options) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(os.Stdout, os.Stderr, options)
	for {
		chunk, ok := readChunk(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(chunk, "\n", " "))
		if session.HandleLine(chunk) {
			return 0
		}
	}
}

// readChunk reads lines until they form a complete chunk. It returns false
// when input is exhausted. Ctrl-C drops the pending chunk.
func readChunk(p prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if needsMore(b.String()) {
			continue
		}
		return b.String(), true
	}
}

// needsMore reports whether src stops partway through a statement.
func needsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}

	_, err := parser.ParseSource(src)
	var parseErr *parser.ParseError
	return errors.As(err, &parseErr) && parseErr.AtEOF
}

var _ prompter = (*liner.State)(nil)
