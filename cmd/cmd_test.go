// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloud-exit/walletsetup/internal/config"
	"github.com/cloud-exit/walletsetup/internal/onboarding"
)

const testPhrase = "abandon ability able about above absent absorb abstract absurd abuse access accident"

func runCheckPassword(t *testing.T, policy, input string) (string, error) {
	t.Helper()
	cfg = config.DefaultConfig()
	var out bytes.Buffer
	checkPasswordCmd.SetIn(strings.NewReader(input))
	checkPasswordCmd.SetOut(&out)
	if err := checkPasswordCmd.Flags().Set("policy", policy); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = checkPasswordCmd.Flags().Set("policy", "")
		checkPasswordCmd.SetIn(nil)
		checkPasswordCmd.SetOut(nil)
	})
	err := checkPasswordCmd.RunE(checkPasswordCmd, nil)
	return out.String(), err
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		input   string
		blocked bool
	}{
		{"match", "", "secret\nsecret\n", false},
		{"mismatch", "", "secret\nsecreT\n", true},
		{"empty confirmation allowed by default", "", "secret\n", false},
		{"nothing entered allowed by default", "", "", false},
		{"empty confirmation required", "require-confirmation", "secret\n", true},
		{"nothing entered required", "require-confirmation", "", true},
		{"match required", "require-confirmation", "secret\nsecret\n", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCheckPassword(t, tc.policy, tc.input)
			if tc.blocked {
				if !errors.Is(err, errPasswordBlocked) {
					t.Fatalf("expected errPasswordBlocked, got %v", err)
				}
				if !strings.HasPrefix(out, "blocked") {
					t.Errorf("output = %q, want blocked", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(out, "ok") {
				t.Errorf("output = %q, want ok", out)
			}
		})
	}
}

func TestCheckPassword_UnknownPolicy(t *testing.T) {
	if _, err := runCheckPassword(t, "lenient", "a\na\n"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestReadPhrase_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrase.txt")
	if err := os.WriteFile(path, []byte(testPhrase+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	p, err := readPhrase(nil, path, 12)
	if err != nil {
		t.Fatalf("readPhrase: %v", err)
	}
	if p.String() != testPhrase {
		t.Errorf("phrase = %q", p.String())
	}
}

func TestReadPhrase_Stdin(t *testing.T) {
	p, err := readPhrase(strings.NewReader(testPhrase), "-", 12)
	if err != nil {
		t.Fatalf("readPhrase: %v", err)
	}
	if p.Len() != 12 {
		t.Errorf("Len = %d, want 12", p.Len())
	}
}

func TestReadPhrase_WrongLength(t *testing.T) {
	_, err := readPhrase(strings.NewReader(testPhrase), "-", 24)
	if !errors.Is(err, onboarding.ErrInvalidPhrase) {
		t.Fatalf("expected ErrInvalidPhrase, got %v", err)
	}
}

func TestReadPhrase_MissingFile(t *testing.T) {
	if _, err := readPhrase(nil, filepath.Join(t.TempDir(), "nope"), 12); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGenerateCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		var buf bytes.Buffer
		if err := generateCompletion(&buf, shell); err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(buf.String(), "walletsetup") {
			t.Errorf("%s completion does not mention walletsetup", shell)
		}
	}
	if err := generateCompletion(&bytes.Buffer{}, "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })
	versionCmd.Run(versionCmd, nil)
	if got, want := buf.String(), "walletsetup version "+Version+"\n"; got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}
