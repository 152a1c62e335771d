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

package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "OFF", OFF.String())
	assert.Equal(t, "UNKNOWN", Level(999).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"debug", DEBUG},
		{"", INFO},
		{"Info", INFO},
		{"warning", WARN},
		{" ERROR ", ERROR},
		{"off", OFF},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.name)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.expected, got, test.name)
	}
	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, "unknown log level: verbose")
}

// TestDefaultLogger_LevelFiltering writes each message level through each logger level.
func TestDefaultLogger_LevelFiltering(t *testing.T) {
	levels := []Level{DEBUG, INFO, WARN, ERROR}
	for _, loggerLevel := range append(levels, OFF) {
		for _, messageLevel := range levels {
			var buf bytes.Buffer
			Log(NewLogger(loggerLevel, &buf), messageLevel, "test %s", "message")

			shouldLog := loggerLevel != OFF && messageLevel >= loggerLevel
			assert.Equal(t, shouldLog, buf.Len() > 0, "logger %s, message %s", loggerLevel, messageLevel)
			if shouldLog {
				assert.Contains(t, buf.String(), "["+messageLevel.String()+"] test message")
			}
		}
	}
}

func TestDefaultLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DEBUG, &buf)
	logger.SetLevel(ERROR)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	assert.Empty(t, buf.String())

	logger.Error("error message: %v", "something went wrong")
	assert.Contains(t, buf.String(), "error message: something went wrong")

	buf.Reset()
	logger.SetLevel(OFF)
	logger.Error("test message")
	assert.Empty(t, buf.String())
}

// TestLogFormat checks the line layout [YYYY-MM-DD HH:MM:SS.mmm] [LEVEL] message.
func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(INFO, &buf).Info("multiple %s %d %v", "params", 123, false)

	line := strings.TrimSpace(buf.String())
	assert.Regexp(t, regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] \[INFO\] multiple params 123 false$`), line)
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Debug("debug %s", "test")
		logger.Info("info %d", 123)
		logger.Warn("warn %v", true)
		logger.Error("error %s %d", "test", 456)
		logger.SetLevel(DEBUG)
		Log(logger, OFF, "nothing")
	})
}

func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	testLogger := NewLogger(DEBUG, &buf)
	SetDefault(testLogger)
	assert.Same(t, testLogger, GetDefault())

	Debug("global debug message")
	Info("global info message")
	Warn("global warn message")
	Error("global error message")

	SetDefault(nil)
	assert.Same(t, testLogger, GetDefault())

	output := buf.String()
	for _, msg := range []string{"global debug message", "global info message", "global warn message", "global error message"} {
		assert.Contains(t, output, msg)
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message from goroutine %d", id)
			logger.SetLevel(INFO)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "concurrent message"))
}

func TestConcurrentSetDefault(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetDefault(NewDiscardLogger())
		}()
		go func() {
			defer wg.Done()
			Info("message %d", 1)
		}()
	}
	wg.Wait()
	assert.NotNil(t, GetDefault())
}
