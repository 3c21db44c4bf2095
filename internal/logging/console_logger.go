package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vvka-141/migembed/pkg/migembed"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	styles  *levelStyles
	mu      sync.Mutex
}

type levelStyles struct {
	verbose lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to out.
// Prefixes are colored only when out is a terminal and NO_COLOR is unset.
func NewConsoleLoggerWithWriter(out io.Writer, verbose bool) *ConsoleLogger {
	l := &ConsoleLogger{
		verbose: verbose,
		out:     out,
	}
	if f, ok := out.(*os.File); ok && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd())) {
		r := lipgloss.NewRenderer(f)
		l.styles = &levelStyles{
			verbose: r.NewStyle().Foreground(lipgloss.Color("240")),
			warn:    r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		}
	}
	return l
}

func (l *ConsoleLogger) write(prefix string, style func(*levelStyles) lipgloss.Style, format string, args []interface{}) {
	if prefix != "" && l.styles != nil {
		prefix = style(l.styles).Render(prefix)
	}
	if prefix != "" {
		prefix += " "
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE]", func(s *levelStyles) lipgloss.Style { return s.verbose }, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", nil, format, args)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write("[WARN]", func(s *levelStyles) lipgloss.Style { return s.warn }, format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR]", func(s *levelStyles) lipgloss.Style { return s.err }, format, args)
}

// Verify ConsoleLogger implements the interface at compile time
var _ migembed.Logger = (*ConsoleLogger)(nil)
