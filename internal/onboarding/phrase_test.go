// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package onboarding

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhrase_Validation(t *testing.T) {
	tests := []struct {
		name    string
		words   []string
		wantLen int
		wantErr bool
	}{
		{"valid twelve", testWords, 12, false},
		{"any length when unset", testWords[:3], 0, false},
		{"empty", nil, 12, true},
		{"short", testWords[:11], 12, true},
		{"blank word", append(slices.Clone(testWords[:11]), " "), 12, true},
		{"duplicate", append(slices.Clone(testWords[:11]), testWords[0]), 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPhrase(tt.words, tt.wantLen)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhrase)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.words, p.Words())
		})
	}
}

func TestNewPhrase_CopiesInput(t *testing.T) {
	words := slices.Clone(testWords)
	p, err := NewPhrase(words, 12)
	require.NoError(t, err)
	words[0] = "changed"
	assert.Equal(t, "abandon", p.Words()[0])
}

func TestParsePhrase(t *testing.T) {
	p, err := ParsePhrase("  Abandon ability\nable\tabout above absent absorb abstract absurd abuse access accident\n", 12)
	require.NoError(t, err)
	assert.Equal(t, testWords, p.Words())
	assert.Equal(t, 12, p.Len())

	_, err = ParsePhrase("one two three", 12)
	assert.ErrorIs(t, err, ErrInvalidPhrase)
}

func TestShuffleWords_IsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	differs := false
	for range 20 {
		out := shuffleWords(testWords, r)
		assert.ElementsMatch(t, testWords, out)
		if !slices.Equal(out, testWords) {
			differs = true
		}
	}
	assert.True(t, differs, "twenty shuffles should not all return the original order")
}

func TestShuffleWords_DoesNotMutateInput(t *testing.T) {
	in := slices.Clone(testWords)
	shuffleWords(in, rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, testWords, in)
}

func TestPasswordsMismatch(t *testing.T) {
	tests := []struct {
		password, confirm string
		want              bool
	}{
		{"", "", false},
		{"a", "", false},
		{"", "a", false},
		{"a", "b", true},
		{"a", "a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordsMismatch(tt.password, tt.confirm), "PasswordsMismatch(%q, %q)", tt.password, tt.confirm)
	}
}

func TestPasswordPolicy_Blocks(t *testing.T) {
	tests := []struct {
		policy            PasswordPolicy
		password, confirm string
		want              bool
	}{
		{AllowEmptyConfirmation, "", "", false},
		{AllowEmptyConfirmation, "a", "", false},
		{AllowEmptyConfirmation, "a", "b", true},
		{AllowEmptyConfirmation, "a", "a", false},
		{RequireConfirmation, "", "", true},
		{RequireConfirmation, "a", "", true},
		{RequireConfirmation, "a", "b", true},
		{RequireConfirmation, "a", "a", false},
	}
	for _, tt := range tests {
		got := tt.policy.Blocks(tt.password, tt.confirm)
		assert.Equal(t, tt.want, got, "%s.Blocks(%q, %q)", tt.policy, tt.password, tt.confirm)
	}
}

func TestParsePasswordPolicy(t *testing.T) {
	p, err := ParsePasswordPolicy("require-confirmation")
	require.NoError(t, err)
	assert.Equal(t, RequireConfirmation, p)

	p, err = ParsePasswordPolicy(AllowEmptyConfirmation.String())
	require.NoError(t, err)
	assert.Equal(t, AllowEmptyConfirmation, p)

	_, err = ParsePasswordPolicy("lenient")
	assert.Error(t, err)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "verify-phrase", StepVerifyPhrase.String())
	assert.Equal(t, "Step(9)", Step(9).String())
	assert.Equal(t, 5, StepCount)
}
