// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package log provides an append-only JSONL event log. The TUI owns stdout,
// so failures that a console app would print go here instead.
package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// =============================================================================
// EVENT
// =============================================================================

// Event is one log line.
type Event struct {
	Time   time.Time `json:"time"`
	Name   string    `json:"event"`
	Error  string    `json:"error,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger appends events to a JSONL file. All methods are safe for concurrent
// use and best-effort: a logger that cannot write drops events silently.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// New opens (creating if necessary) the log file at path.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{file: f}, nil
}

// Discard returns a logger that drops everything, for tests and for startup
// paths where the log file could not be opened.
func Discard() *Logger {
	return &Logger{}
}

// Event appends a named event with optional detail.
func (l *Logger) Event(name, detail string) {
	l.write(Event{Time: time.Now(), Name: name, Detail: detail})
}

// Error appends a named event carrying an error.
func (l *Logger) Error(name string, err error, detail string) {
	e := Event{Time: time.Now(), Name: name, Detail: detail}
	if err != nil {
		e.Error = err.Error()
	}
	l.write(e)
}

func (l *Logger) write(e Event) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	line, err := json.Marshal(e)
	if err != nil {
		return
	}
	l.file.Write(append(line, '\n'))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
