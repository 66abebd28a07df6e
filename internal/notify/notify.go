// Package notify delivers transient user-visible messages (toasts).
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fekuna/stockflow-console/internal/logger"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Terminal prints toasts as single lines.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Success(msg string) { t.write("✔", msg) }
func (t *Terminal) Error(msg string)   { t.write("✖", msg) }

func (t *Terminal) write(mark, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", mark, msg)
}

type logging struct {
	next   Notifier
	logger logger.ZapLogger
}

// WithLogging records every toast in the log before passing it on.
func WithLogging(next Notifier, log logger.ZapLogger) Notifier {
	return &logging{next: next, logger: log}
}

func (l *logging) Success(msg string) {
	l.logger.Info("notification", zap.String("level", string(LevelSuccess)), zap.String("message", msg))
	l.next.Success(msg)
}

func (l *logging) Error(msg string) {
	l.logger.Warn("notification", zap.String("level", string(LevelError)), zap.String("message", msg))
	l.next.Error(msg)
}

type Toast struct {
	Level   Level
	Message string
}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Level: level, Message: msg})
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Last returns the most recent toast, or the zero Toast.
func (r *Recorder) Last() Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = nil
}
