package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/antoine/internal/config"
	"github.com/aretw0/antoine/internal/logging"
	"github.com/aretw0/antoine/internal/presentation/tui"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger from the log settings.
// Logs always go to Stderr to keep Stdout for reports and MCP stdio.
func createLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.Format), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// Output writes command results as rendered Markdown or as JSON.
type Output struct {
	W      io.Writer
	JSON   bool
	Render tui.Renderer
}

// NewOutput picks glamour rendering when w is a terminal and plain Markdown
// otherwise.
func NewOutput(w io.Writer, jsonMode bool) Output {
	out := Output{W: w, JSON: jsonMode, Render: tui.Plain}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width := 0
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
		out.Render = tui.NewRenderer(width)
	}
	return out
}

// Emit writes v as indented JSON in JSON mode and the Markdown report otherwise.
func (o Output) Emit(markdown string, v any) error {
	if o.JSON {
		enc := json.NewEncoder(o.W)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	render := o.Render
	if render == nil {
		render = tui.Plain
	}
	s, err := render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err = io.WriteString(o.W, s)
	return err
}
