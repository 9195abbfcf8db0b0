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
// Package redactor scrubs registered secrets, such as the recovery phrase,
// from log output before it reaches disk.
package redactor

import (
	"bytes"
	"slices"
	"sync"

	"go.uber.org/zap/zapcore"
)

const placeholder = "<redacted>"

// Redactor filters output to replace known secret values with <redacted>.
type Redactor struct {
	mu      sync.RWMutex
	secrets map[string]string // value -> name
}

// New creates a new Redactor instance.
func New() *Redactor {
	return &Redactor{
		secrets: make(map[string]string),
	}
}

// AddSecret registers a secret value to be redacted from output.
// The name is only used for debugging.
func (r *Redactor) AddSecret(value, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if value != "" {
		r.secrets[value] = name
	}
}

// Filter replaces all known secrets in the input with <redacted>. Longer
// secrets are replaced first so a secret containing another is fully hidden.
func (r *Redactor) Filter(input []byte) []byte {
	r.mu.RLock()
	values := make([]string, 0, len(r.secrets))
	for v := range r.secrets {
		values = append(values, v)
	}
	r.mu.RUnlock()

	if len(values) == 0 {
		return input
	}
	slices.SortFunc(values, func(a, b string) int { return len(b) - len(a) })

	output := input
	for _, secret := range values {
		output = bytes.ReplaceAll(output, []byte(secret), []byte(placeholder))
	}
	return output
}

// Clear removes all registered secrets.
func (r *Redactor) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets = make(map[string]string)
}

// Count returns the number of registered secrets.
func (r *Redactor) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.secrets)
}

// WriteSyncer wraps ws so every log entry is filtered before it is written.
func (r *Redactor) WriteSyncer(ws zapcore.WriteSyncer) zapcore.WriteSyncer {
	return &syncer{r: r, ws: ws}
}

type syncer struct {
	r  *Redactor
	ws zapcore.WriteSyncer
}

// Write reports len(p) on success even when redaction changed the length.
func (s *syncer) Write(p []byte) (int, error) {
	if _, err := s.ws.Write(s.r.Filter(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *syncer) Sync() error { return s.ws.Sync() }
