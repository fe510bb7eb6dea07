// Package logging provides the leveled logger injected into every matcher
// component, generalizing the teacher repo's package-level debugLog/
// log.Printf convention into an interface so components stay testable
// with a fake (spec.md §9 — pass collaborators as struct fields).
package logging

import (
	"log"
	"os"
)

// Logger is the leveled logging surface every component depends on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Std is a Logger backed by the standard library's log.Logger, matching
// the teacher's emoji-tagged prefix convention.
type Std struct {
	l     *log.Logger
	debug bool
}

// NewStd builds a Std logger writing to stderr. debug enables Debug output.
func NewStd(debug bool) *Std {
	return &Std{l: log.New(os.Stderr, "", log.LstdFlags), debug: debug}
}

func (s *Std) Debug(format string, args ...any) {
	if s.debug {
		s.l.Printf("🔍 "+format, args...)
	}
}

func (s *Std) Info(format string, args ...any) {
	s.l.Printf("ℹ️  "+format, args...)
}

func (s *Std) Warn(format string, args ...any) {
	s.l.Printf("⚠️  "+format, args...)
}

func (s *Std) Error(format string, args ...any) {
	s.l.Printf("❌ "+format, args...)
}

// Nop discards every message. Useful as a default collaborator in tests
// that don't care about log output.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}

var _ Logger = (*Std)(nil)
var _ Logger = Nop{}
