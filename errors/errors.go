// Package errors defines the shared error types used across the
// lexer, parser, binary decoder, and coordinator: a positioned [Error]
// and a [List] that accumulates errors during a single lex/parse/decode
// pass, per spec.md §7's "accumulate, then fail the whole pass" policy.
package errors

import (
	"fmt"
	"slices"
	"sort"

	"go.uber.org/multierr"

	"github.com/A31Nesta/EcLang/token"
)

// Error is the common error type produced by this module. It always
// carries the position of the offending lexeme, when known.
type Error interface {
	error
	Position() token.Pos
}

// posError is the concrete Error implementation used by [List.AddNewf].
type posError struct {
	pos token.Pos
	msg string
}

func (e *posError) Error() string       { return e.msg }
func (e *posError) Position() token.Pos { return e.pos }

// Newf creates a positioned Error.
func Newf(pos token.Pos, format string, args ...any) Error {
	return &posError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// List accumulates errors over the course of a lex, parse, or decode
// pass. The zero value is an empty list ready to use.
type List []Error

// AddNewf appends a new positioned error to the list.
func (l *List) AddNewf(pos token.Pos, format string, args ...any) {
	*l = append(*l, Newf(pos, format, args...))
}

// Add appends err to the list.
func (l *List) Add(err Error) {
	*l = append(*l, err)
}

// Reset empties the list.
func (l *List) Reset() { *l = (*l)[:0] }

// Len reports the number of accumulated errors.
func (l List) Len() int { return len(l) }

// Sort orders the list by source position, with [token.NoPos] first,
// then by message. Mirrors the ordering cue/errors.List.Sort uses so
// diagnostics read in source order regardless of discovery order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		pi, pj := l[i].Position(), l[j].Position()
		if pi.IsValid() != pj.IsValid() {
			return !pi.IsValid()
		}
		if pi.Filename() != pj.Filename() {
			return pi.Filename() < pj.Filename()
		}
		if pi.Offset() != pj.Offset() {
			return pi.Offset() < pj.Offset()
		}
		return l[i].Error() < l[j].Error()
	})
}

// Error implements the error interface, formatting the first error and
// noting how many more follow it.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
	}
}

// Errs returns a defensive copy of the accumulated errors.
func (l List) Errs() []Error {
	return slices.Clone(l)
}

// Multi folds the list into a go.uber.org/multierr chain, letting
// callers that already range over multierr.Errors inspect each cause
// independently instead of parsing List's combined message string.
func (l List) Multi() error {
	if len(l) == 0 {
		return nil
	}
	var err error
	for _, e := range l {
		err = multierr.Append(err, e)
	}
	return err
}
