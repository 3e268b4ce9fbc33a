// Package diag models the diagnostic sink that spec.md §1 names as an
// external collaborator: a stream for human-readable errors and logs
// that the core emits to but never reads from. The reference
// implementation logs through [log/slog], the same structured-logging
// idiom cue-lang-cue's internal/httplog package uses.
package diag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/A31Nesta/EcLang/token"
)

// Sink receives human-readable diagnostics from a compile or decode
// pass. Implementations must be safe to call from a single compiling
// goroutine; the core never calls a Sink concurrently with itself.
type Sink interface {
	// Errorf logs a fatal diagnostic at the given position. pos may be
	// [token.NoPos] when no source location applies (e.g. a decode
	// error against a binary stream).
	Errorf(pos token.Pos, format string, args ...any)
	// Infof logs a non-fatal, informational diagnostic.
	Infof(format string, args ...any)
}

// Slog is a [Sink] backed by a [log/slog.Logger]. compileID, when
// non-empty, is attached to every record so that a multi-file compile
// (with nested #include*/#template* loads) can be correlated across
// log lines. It is set by whoever constructs the Slog; EcLang.Compile
// does not set it.
type Slog struct {
	Logger    *slog.Logger
	CompileID string
}

// NewSlog returns a Slog sink wrapping logger, or [slog.Default] if
// logger is nil.
func NewSlog(logger *slog.Logger, compileID string) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{Logger: logger, CompileID: compileID}
}

func (s *Slog) Errorf(pos token.Pos, format string, args ...any) {
	s.log(slog.LevelError, pos, format, args...)
}

func (s *Slog) Infof(format string, args ...any) {
	s.log(slog.LevelInfo, token.NoPos, format, args...)
}

func (s *Slog) log(level slog.Level, pos token.Pos, format string, args ...any) {
	attrs := make([]any, 0, 4)
	if s.CompileID != "" {
		attrs = append(attrs, slog.String("compile_id", s.CompileID))
	}
	if pos.IsValid() {
		attrs = append(attrs, slog.String("pos", pos.String()))
	}
	s.Logger.Log(context.Background(), level, fmt.Sprintf(format, args...), attrs...)
}
