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

package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfig checks the defaults.
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	assert.True(t, cfg.Format.Unmangle)
	assert.True(t, cfg.Compiler.EnableCache)
	assert.Equal(t, 1024, cfg.Compiler.MaxCacheEntries)
	assert.Equal(t, RedactPlaceholder, cfg.QueryLog.Redact)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "yaml overrides",
			data: `
format:
  unmangle: false
compiler:
  enableCache: false
queryLog:
  namespace: prod
  redact: hash
  hashKey0: 7
`,
			check: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.Format.Unmangle)
				assert.False(t, cfg.Compiler.EnableCache)
				assert.Equal(t, 1024, cfg.Compiler.MaxCacheEntries)
				assert.Equal(t, "prod", cfg.QueryLog.Namespace)
				assert.Equal(t, RedactHash, cfg.QueryLog.Redact)
				assert.Equal(t, uint64(7), cfg.QueryLog.HashKey0)
			},
		},
		{
			name: "json input",
			data: `{"compiler": {"maxCacheEntries": 8}}`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 8, cfg.Compiler.MaxCacheEntries)
				assert.True(t, cfg.Format.Unmangle)
			},
		},
		{
			name:    "negative cache size",
			data:    `compiler: {maxCacheEntries: -1}`,
			wantErr: true,
		},
		{
			name:    "bad redact mode",
			data:    `queryLog: {redact: scramble}`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			data:    "format: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queryLog:\n  level: DEBUG\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.QueryLog.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
