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
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_copy_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogCopyOperation(context.Background(), CopyOperation{
					From:  "node_modules/foo/foo.js",
					To:    "vendor/foo.js",
					Files: 1,
					Bytes: 42,
				})
			},
			wantLogs: []string{
				"✓ vendor/foo.js                       file       1 file       ← node_modules/foo/foo.js",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("copying 2 entries")
			},
			wantLogs: []string{
				"vendorcopy • copying 2 entries",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestCopyOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   CopyOperation
		want string
	}{
		{
			name: "directory",
			op:   CopyOperation{From: "node_modules/bar/dist", To: "vendor/bar", IsDir: true, Files: 3},
			want: "✓ vendor/bar                          dir        3 files      ← node_modules/bar/dist",
		},
		{
			name: "failed_copy",
			op:   CopyOperation{From: "node_modules/missing.js", To: "vendor/missing.js", Err: errors.New("not found")},
			want: "✗ vendor/missing.js                   file       failed       ← node_modules/missing.js",
		},
		{
			name: "empty_directory",
			op:   CopyOperation{From: "empty", To: "vendor/empty", IsDir: true},
			want: "✓ vendor/empty                        dir        0 files      ← empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			logger.LogCopyOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()), "formatted output should match")
		})
	}
}

func TestTotalsSkipFailures(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogCopyOperation(context.Background(), CopyOperation{From: "a", To: "b", Files: 2, Bytes: 10})
		}()
	}
	wg.Wait()
	logger.LogCopyOperation(context.Background(), CopyOperation{From: "c", To: "d", Err: errors.New("boom")})

	copies, files, written := logger.Totals()
	assert.Equal(t, 8, copies)
	assert.Equal(t, 16, files)
	assert.Equal(t, int64(80), written)
}
