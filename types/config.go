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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config configures the expression engine.
type Config struct {
	Format   FormatConfig   `json:"format"`
	Compiler CompilerConfig `json:"compiler"`
	QueryLog QueryLogConfig `json:"queryLog"`
}

// FormatConfig controls canonical SQL rendering.
type FormatConfig struct {
	// Unmangle quotes identifiers that would not re-parse as bare names.
	// When false identifiers are written verbatim.
	Unmangle bool `json:"unmangle"`
}

// CompilerConfig controls predicate compilation.
type CompilerConfig struct {
	// EnableCache reuses compiled predicates for identical (expression, schema) pairs
	EnableCache bool `json:"enableCache"`
	// MaxCacheEntries bounds the cache; 0 means unbounded
	MaxCacheEntries int `json:"maxCacheEntries"`
}

// RedactMode selects how the query logger hides literal values.
type RedactMode string

const (
	// RedactPlaceholder replaces literals by typed constants
	RedactPlaceholder RedactMode = "placeholder"
	// RedactHash replaces literals by keyed siphash digests
	RedactHash RedactMode = "hash"
)

// QueryLogConfig configures query logging.
type QueryLogConfig struct {
	Enabled bool `json:"enabled"`
	// Namespace seeds the query GUIDs so that separate deployments produce
	// separate identifiers for the same text.
	Namespace string     `json:"namespace"`
	Level     string     `json:"level"`
	Redact    RedactMode `json:"redact"`
	// HashKey0 and HashKey1 key the siphash used by RedactHash.
	HashKey0 uint64 `json:"hashKey0"`
	HashKey1 uint64 `json:"hashKey1"`
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		Format: FormatConfig{Unmangle: true},
		Compiler: CompilerConfig{
			EnableCache:     true,
			MaxCacheEntries: 1024,
		},
		QueryLog: QueryLogConfig{
			Enabled:   true,
			Namespace: "sqlexpr",
			Level:     "INFO",
			Redact:    RedactPlaceholder,
		},
	}
}

// ParseConfig decodes YAML or JSON on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Compiler.MaxCacheEntries < 0 {
		return fmt.Errorf("compiler.maxCacheEntries must not be negative")
	}
	switch c.QueryLog.Redact {
	case "", RedactPlaceholder, RedactHash:
	default:
		return fmt.Errorf("unknown queryLog.redact mode: %s", c.QueryLog.Redact)
	}
	return nil
}
