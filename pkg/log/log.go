// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/sitefix/pkg/status"
)

// 📦 JobOperation describes the job being run for the console header
type JobOperation struct {
	Name   string // Job name
	Root   string // Directory being rewritten
	Rules  int    // Number of rules in the pipeline
	DryRun bool   // Whether writes are skipped
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentJob *JobOperation
}

var _ io.Writer = (*Logger)(nil)

// 🏭 New creates a new logger. Structured events go to stderr, console lines to console.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Zerolog returns the structured logger, for attaching to a context
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger, and its zerolog logger, to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// Write sends raw lines to the console, serialized with every other console message
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.console.Write(p)
}

// 📝 StartJob prints the header for a job
func (l *Logger) StartJob(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentJob = &op

	mode := "write"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[rewriting %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules, %s", op.Rules, mode))

	l.zlog.Info().
		Str("job", op.Name).
		Str("root", op.Root).
		Int("rules", op.Rules).
		Bool("dry_run", op.DryRun).
		Msg("starting job")
}

// 📝 EndJob prints the summary for the current job
func (l *Logger) EndJob(ctx context.Context, summary *status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentJob == nil {
		return
	}

	if summary != nil {
		fmt.Fprintln(l.console)
		if err := status.PrintSummary(l.console, summary); err != nil {
			l.zlog.Error().Err(err).Msg("printing summary")
		}
		l.zlog.Info().
			Str("job", l.currentJob.Name).
			Int("processed", summary.Processed).
			Int("changed", summary.Changed).
			Int("failed", summary.Failed).
			Msg("job complete")
	}

	l.currentJob = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("sitefix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
