/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package contract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/dguard"
	"dirpx.dev/dguard/kind"
)

// Mode selects whether an engine evaluates contract predicates.
type Mode string

const (
	// Enabled evaluates every registered predicate.
	Enabled Mode = "enabled"

	// Disabled skips every predicate from every phase. Operation bodies
	// still run and their panics are still contained; only validation
	// is omitted.
	Disabled Mode = "disabled"
)

// ErrModeInvalid reports a string that names no verification mode.
var ErrModeInvalid = errors.New("dguard: invalid verification mode")

// EnvVerification is the environment variable consulted by
// [ConfigFromEnv] and, as an override, by [LoadConfig].
const EnvVerification = "DGUARD_VERIFICATION"

// ParseMode parses a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Enabled:
		return Enabled, nil
	case Disabled:
		return Disabled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrModeInvalid, s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// UnmarshalYAML implements yaml.Unmarshaler, rejecting unknown mode
// names at decode time.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config carries the engine's process-level settings. It is read once
// at startup and passed to [NewEngine]; engines never consult the
// environment or any file afterwards.
type Config struct {
	// Verification selects whether contracts are evaluated. An unset
	// mode means [Enabled]: skipping validation must always be an
	// explicit decision.
	Verification Mode `yaml:"verification"`
}

// DefaultConfig returns the configuration used when no source is
// present: verification enabled.
func DefaultConfig() Config {
	return Config{Verification: Enabled}
}

// LoadConfig decodes a YAML configuration document:
//
//	verification: disabled
//
// An empty document yields [DefaultConfig]. Unknown fields and unknown
// mode names are rejected. When DGUARD_VERIFICATION is set in the
// environment it overrides the document, so an operator can flip
// verification without editing files.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, dguard.E(kind.Configuration, "cannot decode verification config",
			dguard.WithCauseOption(err))
	}
	if cfg.Verification == "" {
		cfg.Verification = Enabled
	}
	if m, ok, err := envMode(); err != nil {
		return Config{}, err
	} else if ok {
		cfg.Verification = m
	}
	return cfg, nil
}

// ConfigFromEnv reads the configuration from DGUARD_VERIFICATION alone.
// An unset variable yields [DefaultConfig].
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if m, ok, err := envMode(); err != nil {
		return Config{}, err
	} else if ok {
		cfg.Verification = m
	}
	return cfg, nil
}

func envMode() (Mode, bool, error) {
	raw, ok := os.LookupEnv(EnvVerification)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	m, err := ParseMode(raw)
	if err != nil {
		return "", true, dguard.E(kind.Configuration, "invalid verification mode in environment",
			dguard.WithContextOption("variable", EnvVerification),
			dguard.WithContextOption("value", raw),
			dguard.WithCauseOption(err))
	}
	return m, true, nil
}
