// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/cloud-exit/walletsetup/internal/clipboard"
	"github.com/cloud-exit/walletsetup/internal/onboarding"
	"gopkg.in/yaml.v3"
)

// Config is the top-level walletsetup configuration (config.yaml).
type Config struct {
	Version          int      `yaml:"version"`
	PhraseLength     int      `yaml:"phrase_length"`
	VerifyErrorDelay Duration `yaml:"verify_error_delay"`
	PasswordPolicy   string   `yaml:"password_policy"`
	Clipboard        string   `yaml:"clipboard"`
	LogLevel         string   `yaml:"log_level,omitempty"`
	LogFile          string   `yaml:"log_file,omitempty"`
}

// Duration is a time.Duration stored as a string such as "3s".
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// ValidPhraseLengths are the BIP-39 mnemonic lengths.
var ValidPhraseLengths = []int{12, 15, 18, 21, 24}

var logLevels = []string{"", "debug", "info", "warn", "error"}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if !slices.Contains(ValidPhraseLengths, c.PhraseLength) {
		return fmt.Errorf("phrase_length must be one of %v, got %d", ValidPhraseLengths, c.PhraseLength)
	}
	if c.VerifyErrorDelay <= 0 {
		return fmt.Errorf("verify_error_delay must be positive, got %s", time.Duration(c.VerifyErrorDelay))
	}
	if _, err := onboarding.ParsePasswordPolicy(c.PasswordPolicy); err != nil {
		return fmt.Errorf("password_policy: %w", err)
	}
	switch c.Clipboard {
	case clipboard.ModeAuto, clipboard.ModeSystem, clipboard.ModeOSC52, clipboard.ModeNone:
	default:
		return fmt.Errorf("clipboard must be auto, system, osc52 or none, got %q", c.Clipboard)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Policy returns the parsed password policy. Call Validate first.
func (c *Config) Policy() onboarding.PasswordPolicy {
	p, _ := onboarding.ParsePasswordPolicy(c.PasswordPolicy)
	return p
}
