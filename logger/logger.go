/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for sqlexpr.
// Compilation results are logged at DEBUG; the query logger writes at the
// level its configuration names.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level orders messages by severity. A logger writes a message when the
// message level is at or above its own level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	// OFF writes nothing
	OFF
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

func (l Level) String() string {
	if l < DEBUG || l > OFF {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name such as "debug" or "WARN".
// An empty name means INFO.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF":
		return OFF, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", name)
	}
}

// Logger is the logging surface used across sqlexpr. Arguments follow
// fmt.Sprintf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

// textLogger writes `[timestamp] [LEVEL] message` lines. The level may be
// changed while other goroutines log.
type textLogger struct {
	level atomic.Int32
	out   *log.Logger
}

// NewLogger returns a Logger writing to output, e.g.
//
//	l := logger.NewLogger(logger.INFO, os.Stderr)
//	l.Info("compiled %d predicates", n)
func NewLogger(level Level, output io.Writer) Logger {
	l := &textLogger{out: log.New(output, "", 0)}
	l.level.Store(int32(level))
	return l
}

func (l *textLogger) Debug(format string, args ...interface{}) { l.write(DEBUG, format, args) }
func (l *textLogger) Info(format string, args ...interface{})  { l.write(INFO, format, args) }
func (l *textLogger) Warn(format string, args ...interface{})  { l.write(WARN, format, args) }
func (l *textLogger) Error(format string, args ...interface{}) { l.write(ERROR, format, args) }

func (l *textLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *textLogger) enabled(level Level) bool {
	current := Level(l.level.Load())
	return current != OFF && level >= current
}

func (l *textLogger) write(level Level, format string, args []interface{}) {
	if !l.enabled(level) {
		return
	}
	l.out.Printf("[%s] [%s] %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, fmt.Sprintf(format, args...))
}

type discardLogger struct{}

// NewDiscardLogger returns a Logger that drops every message.
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}
func (discardLogger) SetLevel(Level)               {}

type holder struct{ l Logger }

// The process-wide default writes INFO and above to stderr, so command
// output on stdout stays clean.
var defaultInstance atomic.Pointer[holder]

func init() {
	defaultInstance.Store(&holder{l: NewLogger(INFO, os.Stderr)})
}

// SetDefault replaces the process-wide default logger. A nil logger is
// ignored.
func SetDefault(l Logger) {
	if l != nil {
		defaultInstance.Store(&holder{l: l})
	}
}

// GetDefault returns the process-wide default logger.
func GetDefault() Logger {
	return defaultInstance.Load().l
}

func Debug(format string, args ...interface{}) { GetDefault().Debug(format, args...) }
func Info(format string, args ...interface{})  { GetDefault().Info(format, args...) }
func Warn(format string, args ...interface{})  { GetDefault().Warn(format, args...) }
func Error(format string, args ...interface{}) { GetDefault().Error(format, args...) }

// Log writes through the method of l that matches level. OFF writes nothing.
func Log(l Logger, level Level, format string, args ...interface{}) {
	switch level {
	case DEBUG:
		l.Debug(format, args...)
	case INFO:
		l.Info(format, args...)
	case WARN:
		l.Warn(format, args...)
	case ERROR:
		l.Error(format, args...)
	}
}
