// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloud-exit/walletsetup/internal/redactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoDestinationIsNop(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wallet.log")
	l, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	l.Info("onboarding completed")
	l.Debug("hidden")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "onboarding completed")
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestNew_VerboseUsesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.log")
	l, err := New(Options{Verbose: true, DefaultFile: path})
	require.NoError(t, err)
	l.Debug("debug line")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "shouty"})
	assert.Error(t, err)
}

func TestNew_RedactsSecrets(t *testing.T) {
	r := redactor.New()
	path := filepath.Join(t.TempDir(), "wallet.log")
	l, err := New(Options{File: path, Level: "info", Redactor: r})
	require.NoError(t, err)

	r.AddSecret("abandon ability able", "recovery phrase")
	l.Warn("clipboard rejected abandon ability able")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clipboard rejected <redacted>")
	assert.NotContains(t, string(data), "abandon")
}
