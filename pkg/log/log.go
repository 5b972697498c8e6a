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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent copy entries
	nameWidth    = 35 // Base width for the destination
	kindWidth    = 10 // Width for the entry kind
	detailWidth  = 12 // Width for the file count
	failedDetail = "failed"
)

// 🎯 CopyOperation is one finished (or failed) copy as shown to the user
type CopyOperation struct {
	From  string // Source path as displayed
	To    string // Destination path as displayed
	IsDir bool   // Whether the source was a directory
	Files int    // Files written
	Bytes int64  // Bytes written
	Err   error  // Set when the copy failed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []CopyOperation
}

// 🏭 NewWithZerolog writes console lines to console and mirrors them as
// structured events on zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
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

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (op CopyOperation) kind() string {
	if op.IsDir {
		return "dir"
	}
	return "file"
}

func (op CopyOperation) detail() string {
	if op.Err != nil {
		return failedDetail
	}
	if op.Files == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", op.Files)
}

// 📝 formatCopyOperation formats a copy for display
func (l *Logger) formatCopyOperation(op CopyOperation) string {
	symbol, symbolColor := '✓', color.FgGreen
	if op.Err != nil {
		symbol, symbolColor = '✗', color.FgRed
	}

	kindColor := color.FgBlue
	if op.IsDir {
		kindColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.To),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.kind())),
		fmt.Sprintf("%-*s", detailWidth, op.detail()),
		color.New(color.Faint).Sprint("← "+op.From))
}

// 📝 LogCopyOperation logs a copy. Safe to call from several goroutines.
func (l *Logger) LogCopyOperation(ctx context.Context, op CopyOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatCopyOperation(op))

	event := l.zlog.Info()
	if op.Err != nil {
		event = l.zlog.Error().Err(op.Err)
	}
	event.
		Str("from", op.From).
		Str("to", op.To).
		Bool("is_dir", op.IsDir).
		Int("files", op.Files).
		Int64("bytes", op.Bytes).
		Msg("copy operation")
}

// 📊 Totals sums the copies logged so far
func (l *Logger) Totals() (copies, files int, bytes int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, op := range l.operations {
		if op.Err != nil {
			continue
		}
		copies++
		files += op.Files
		bytes += op.Bytes
	}
	return copies, files, bytes
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("vendorcopy")
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
