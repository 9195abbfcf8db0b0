// walletsetup - Wallet Onboarding Wizard
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package onboarding

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testWords = []string{
	"abandon", "ability", "able", "about", "above", "absent",
	"absorb", "abstract", "absurd", "abuse", "access", "accident",
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type harness struct {
	c         *Controller
	completed int
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	phrase, err := NewPhrase(testWords, 12)
	require.NoError(t, err)
	h := &harness{}
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	h.c, err = New(phrase, func() { h.completed++ }, opts...)
	require.NoError(t, err)
	t.Cleanup(h.c.Close)
	return h
}

// toVerify walks the controller to the verify-phrase step.
func (h *harness) toVerify(t *testing.T) {
	t.Helper()
	require.NoError(t, h.c.Advance())
	h.c.SetPassword("hunter22")
	h.c.SetConfirmation("hunter22")
	require.NoError(t, h.c.Advance())
	h.c.AcceptBackupTerms(true)
	require.NoError(t, h.c.Advance())
	h.c.AcceptBackedUp(true)
	require.NoError(t, h.c.Advance())
	require.Equal(t, StepVerifyPhrase, h.c.Step())
}

func TestNew_RequiresPhraseAndCallback(t *testing.T) {
	_, err := New(Phrase{}, func() {})
	assert.ErrorIs(t, err, ErrInvalidPhrase)

	phrase, err := NewPhrase(testWords, 12)
	require.NoError(t, err)
	_, err = New(phrase, nil)
	assert.ErrorIs(t, err, ErrNoCompletion)
}

func TestAdvance_EndToEnd(t *testing.T) {
	h := newHarness(t)
	h.toVerify(t)

	for _, w := range testWords[:11] {
		out, err := h.c.SelectWord(w)
		require.NoError(t, err)
		assert.Equal(t, Collecting, out)
	}
	out, err := h.c.SelectWord(testWords[11])
	require.NoError(t, err)
	assert.Equal(t, Verified, out)

	assert.Equal(t, 1, h.completed)
	assert.Equal(t, StepVerifyPhrase, h.c.Step())
	st := h.c.State()
	assert.True(t, st.Verified)
	assert.True(t, st.Completed)

	err = h.c.Advance()
	assert.ErrorIs(t, err, ErrCompleted)
	assert.Equal(t, 1, h.completed, "completion must fire exactly once")
}

func TestAdvance_Guards(t *testing.T) {
	h := newHarness(t, WithPasswordPolicy(RequireConfirmation))
	require.NoError(t, h.c.Advance())

	err := h.c.Advance()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepCreatePassword, stepErr.Step)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	h.c.SetPassword("a")
	h.c.SetConfirmation("b")
	assert.ErrorIs(t, h.c.Advance(), ErrPasswordMismatch)
	h.c.SetConfirmation("a")
	require.NoError(t, h.c.Advance())

	assert.ErrorIs(t, h.c.Advance(), ErrTermsNotAccepted)
	require.NoError(t, h.c.SetTerms(TermsBackup, true))
	require.NoError(t, h.c.Advance())

	assert.ErrorIs(t, h.c.Advance(), ErrTermsNotAccepted)
	require.NoError(t, h.c.SetTerms(TermsBackedUp, true))
	require.NoError(t, h.c.Advance())

	assert.ErrorIs(t, h.c.Advance(), ErrPhraseNotVerified)
	assert.Equal(t, StepVerifyPhrase, h.c.Step())
	assert.Zero(t, h.completed)
}

func TestAdvance_AllowEmptyConfirmationIsDefault(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.c.Advance())
	h.c.SetPassword("only-one-field")
	require.NoError(t, h.c.Advance(), "empty confirmation does not block by default")
	assert.Equal(t, StepBackupIntro, h.c.Step())
}

func TestSetTerms_UnknownKey(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.c.SetTerms("marketing", true))
}

func TestSelectWord_WrongStep(t *testing.T) {
	h := newHarness(t)
	_, err := h.c.SelectWord(testWords[0])
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSelectWord_UnknownWord(t *testing.T) {
	h := newHarness(t)
	h.toVerify(t)
	_, err := h.c.SelectWord("zebra")
	assert.ErrorIs(t, err, ErrUnknownWord)
	assert.Empty(t, h.c.State().AssembledPhrase)
}

func TestSelectWord_DuplicateIsNoop(t *testing.T) {
	h := newHarness(t)
	h.toVerify(t)

	_, err := h.c.SelectWord(testWords[3])
	require.NoError(t, err)
	out, err := h.c.SelectWord(testWords[3])
	require.NoError(t, err)
	assert.Equal(t, Unchanged, out)
	assert.Equal(t, []string{testWords[3]}, h.c.State().AssembledPhrase)
}

func TestUnselectWord(t *testing.T) {
	h := newHarness(t)
	h.toVerify(t)

	assert.False(t, h.c.UnselectWord(testWords[0]), "unselecting an absent word is a no-op")

	for _, w := range testWords[:3] {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}
	assert.True(t, h.c.UnselectWord(testWords[1]))
	assert.Equal(t, []string{testWords[0], testWords[2]}, h.c.State().AssembledPhrase)
	assert.False(t, h.c.Selected(testWords[1]))
	assert.True(t, h.c.Selected(testWords[2]))
}

func TestSelectWord_MismatchClearsAndResets(t *testing.T) {
	h := newHarness(t, WithErrorDelay(20*time.Millisecond))
	h.toVerify(t)

	wrong := slices.Clone(testWords)
	wrong[0], wrong[1] = wrong[1], wrong[0]
	var out Outcome
	var err error
	for _, w := range wrong {
		out, err = h.c.SelectWord(w)
		require.NoError(t, err)
	}
	assert.Equal(t, Mismatch, out)

	st := h.c.State()
	assert.Empty(t, st.AssembledPhrase)
	assert.True(t, st.VerifyError)
	assert.Zero(t, h.completed)

	assert.Eventually(t, func() bool { return !h.c.VerifyError() }, time.Second, 5*time.Millisecond)
}

func TestSelectWord_ClearsErrorImmediately(t *testing.T) {
	h := newHarness(t, WithErrorDelay(time.Hour))
	h.toVerify(t)

	for _, w := range slices.Backward(testWords) {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}
	require.True(t, h.c.VerifyError())

	_, err := h.c.SelectWord(testWords[0])
	require.NoError(t, err)
	assert.False(t, h.c.VerifyError())
}

func TestMismatchThenCorrectOrderCompletes(t *testing.T) {
	h := newHarness(t, WithErrorDelay(time.Hour))
	h.toVerify(t)

	for _, w := range slices.Backward(testWords) {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}
	for _, w := range testWords {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, h.completed)
}

func TestErrorClearedHook(t *testing.T) {
	fired := make(chan struct{}, 1)
	h := newHarness(t,
		WithErrorDelay(10*time.Millisecond),
		WithErrorClearedHook(func() { fired <- struct{}{} }),
	)
	h.toVerify(t)
	for _, w := range slices.Backward(testWords) {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("error cleared hook did not fire")
	}
	assert.False(t, h.c.VerifyError())
}

func TestClose_CancelsPendingReset(t *testing.T) {
	fired := make(chan struct{}, 1)
	h := newHarness(t,
		WithErrorDelay(20*time.Millisecond),
		WithErrorClearedHook(func() { fired <- struct{}{} }),
	)
	h.toVerify(t)
	for _, w := range slices.Backward(testWords) {
		_, err := h.c.SelectWord(w)
		require.NoError(t, err)
	}
	h.c.Close()

	select {
	case <-fired:
		t.Fatal("reset fired after Close")
	case <-time.After(80 * time.Millisecond):
	}
	assert.True(t, h.c.VerifyError(), "closed session keeps its last state")

	assert.ErrorIs(t, h.c.Advance(), ErrClosed)
	_, err := h.c.SelectWord(testWords[0])
	assert.ErrorIs(t, err, ErrClosed)
	h.c.Close()
}

func TestPool_StableAndComplete(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.c.Pool(), "pool is built when the verify step is reached")
	h.toVerify(t)

	pool := h.c.Pool()
	assert.ElementsMatch(t, testWords, pool)
	assert.Equal(t, pool, h.c.Pool())

	_, err := h.c.SelectWord(testWords[0])
	require.NoError(t, err)
	assert.Equal(t, pool, h.c.Pool())
}

func TestRestore(t *testing.T) {
	restored := 0
	h := newHarness(t, WithRestoreHandler(func() { restored++ }))
	require.NoError(t, h.c.Restore())
	assert.Equal(t, 1, restored)

	require.NoError(t, h.c.Advance())
	assert.ErrorIs(t, h.c.Restore(), ErrWrongStep)

	plain := newHarness(t)
	assert.ErrorIs(t, plain.c.Restore(), ErrNoRestore)
}

func TestCopyPhrase(t *testing.T) {
	cb := &fakeClipboard{}
	h := newHarness(t, WithClipboard(cb))
	assert.True(t, h.c.CopyPhrase())
	assert.Equal(t, "abandon ability able about above absent absorb abstract absurd abuse access accident", cb.text)

	failing := newHarness(t, WithClipboard(&fakeClipboard{err: errors.New("permission denied")}))
	assert.False(t, failing.c.CopyPhrase())

	none := newHarness(t)
	assert.False(t, none.c.CopyPhrase())
}

func TestSettersIgnoredAfterClose(t *testing.T) {
	h := newHarness(t)
	h.c.Close()
	h.c.SetPassword("x")
	h.c.AcceptBackupTerms(true)
	st := h.c.State()
	assert.Empty(t, st.Password)
	assert.False(t, st.BackupTermsAccepted)
}
