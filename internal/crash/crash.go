/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic anywhere in the process into a crash
// report on disk instead of a bare stack trace on stderr.
package crash

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"log/slog"

	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/version"
)

// exitFn is swapped out by tests; the real process must terminate with
// a nonzero status after a panic.
var exitFn = os.Exit

// ReportDir returns the directory crash reports are written to.
func ReportDir() string {
	return filepath.Join(os.TempDir(), "gowhiteboard-crash")
}

// Recover is meant to be deferred at the top of main. It recovers a
// panic, logs it, writes a report and exits with status 2.
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	stack := debug.Stack()
	l := applog.WithComponent("crash")
	l.Error("panic recovered", slog.Any("panic", r))

	reportPath, err := writeReport(r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
	} else {
		l.Info("crash report written", slog.String("path", reportPath))
	}

	fmt.Fprintf(os.Stderr, "gowhiteboard crashed: %v\n", r)
	if reportPath != "" {
		fmt.Fprintf(os.Stderr, "A crash report was written to %s\n", reportPath)
	}
	exitFn(2)
}

func writeReport(cause any, stack []byte) (string, error) {
	dir := ReportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash report dir: %w", err)
	}
	name := fmt.Sprintf("crash-%s.txt", time.Now().UTC().Format("20060102-150405"))
	p := filepath.Join(dir, name)

	var b []byte
	b = fmt.Appendf(b, "Go Whiteboard crash report\n")
	b = fmt.Appendf(b, "Time:    %s\n", time.Now().UTC().Format(time.RFC3339))
	b = fmt.Appendf(b, "Version: %s\n", version.String())
	b = fmt.Appendf(b, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	b = fmt.Appendf(b, "Go:      %s\n", runtime.Version())
	b = fmt.Appendf(b, "Panic:   %v\n\n", cause)
	b = append(b, stack...)

	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	return p, nil
}
