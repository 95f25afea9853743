// Copyright 2025 Poiesic Systems
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


package expansion

import (
	"fmt"

	"github.com/poiesic/skosexpand/core"
)

// Config holds the expansion settings applied to tokens coming from an
// analyzer, plus the engine-wide depth cap.
type Config struct {
	// Kind selects URI or label resolution for incoming tokens.
	// Default: KindLabel
	Kind Kind

	// Policy selects what is collected.
	// Default: PolicyLabels | PolicyBroader
	Policy Policy

	// Depth is the number of relation hops walked per request.
	// Default: 1
	Depth int

	// MaxDepth caps Depth for every request the engine serves.
	// Default: 2
	MaxDepth int

	// Language restricts label matching and emitted labels to one language.
	// Empty means no filter.
	Language string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithKind sets the token kind.
func WithKind(kind Kind) ConfigOption {
	return func(c *Config) {
		c.Kind = kind
	}
}

// WithPolicy sets the expansion policy.
func WithPolicy(policy Policy) ConfigOption {
	return func(c *Config) {
		c.Policy = policy
	}
}

// WithDepth sets the per-request traversal depth.
func WithDepth(depth int) ConfigOption {
	return func(c *Config) {
		c.Depth = depth
	}
}

// WithDepthCap sets the engine-wide depth cap.
func WithDepthCap(depth int) ConfigOption {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithLanguage sets the language filter.
func WithLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.Language = lang
	}
}

// DefaultConfig returns a Config expanding labels to their synonyms and
// direct broader concepts.
func DefaultConfig() *Config {
	return &Config{
		Kind:     KindLabel,
		Policy:   PolicyLabels | PolicyBroader,
		Depth:    1,
		MaxDepth: 2,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks the configuration and canonicalizes the language tag.
func (c *Config) Validate() error {
	if c.Kind != KindLabel && c.Kind != KindURI {
		return fmt.Errorf("expansion config: %w: %d", ErrUnknownKind, c.Kind)
	}
	if c.Policy&^PolicyAll != 0 {
		return fmt.Errorf("expansion config: %w: %d", ErrUnknownPolicy, c.Policy)
	}
	if c.Depth < 0 {
		return fmt.Errorf("expansion config: %w: depth %d", ErrInvalidDepth, c.Depth)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("expansion config: %w: max depth %d", ErrInvalidDepth, c.MaxDepth)
	}
	c.Language = core.NormalizeLang(c.Language)
	return nil
}

// Request builds the expansion request for token.
func (c *Config) Request(token string) Request {
	return Request{
		Token:    token,
		Kind:     c.Kind,
		Policy:   c.Policy,
		Depth:    c.Depth,
		Language: c.Language,
	}
}
