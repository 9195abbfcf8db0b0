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

// Package logging builds the structured logger. The wizard owns the
// terminal, so log output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloud-exit/walletsetup/internal/redactor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level and destination.
type Options struct {
	Level   string // debug, info, warn, error; empty means warn
	File    string // log file path; empty disables logging unless Verbose
	Verbose bool   // force debug level
	// DefaultFile is used when Verbose is set and File is empty.
	DefaultFile string
	// Redactor, when set, scrubs its secrets from every entry.
	Redactor *redactor.Redactor
}

// New returns a logger for opts. It returns a no-op logger when there is no
// destination.
func New(opts Options) (*zap.Logger, error) {
	path := opts.File
	if path == "" && opts.Verbose {
		path = opts.DefaultFile
	}
	if path == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.WarnLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	ws, _, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if opts.Redactor != nil {
		ws = opts.Redactor.WriteSyncer(ws)
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(config.EncoderConfig), ws, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(ws)), nil
}
