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

package onboarding

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Pool returns the shuffled word bank. It is nil before the verify step is
// reached and identical on every call afterwards.
func (c *Controller) Pool() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.pool)
}

// Selected reports whether word is currently in the assembled phrase.
func (c *Controller) Selected(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.assembled, word)
}

// VerifyError reports whether the last verification attempt failed and the
// error is still showing.
func (c *Controller) VerifyError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifyError
}

// SelectWord appends word to the assembled phrase and clears any showing
// error. Once every word is placed the phrase is checked: a match completes
// onboarding, a mismatch clears the selection and raises the error flag for
// the configured delay.
func (c *Controller) SelectWord(word string) (Outcome, error) {
	c.mu.Lock()
	if err := c.verifyStepLocked(); err != nil {
		c.mu.Unlock()
		return Unchanged, err
	}
	if !c.phrase.contains(word) {
		c.mu.Unlock()
		return Unchanged, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}

	c.clearErrorLocked()
	if slices.Contains(c.assembled, word) {
		c.mu.Unlock()
		return Unchanged, nil
	}
	c.assembled = append(c.assembled, word)
	if len(c.assembled) < c.phrase.Len() {
		c.mu.Unlock()
		return Collecting, nil
	}

	if !c.phrase.matches(c.assembled) {
		c.assembled = nil
		c.verifyError = true
		c.scheduleResetLocked()
		c.log.Info("recovery phrase verification failed")
		c.mu.Unlock()
		return Mismatch, nil
	}

	c.verified = true
	done, err := c.advanceLocked()
	c.mu.Unlock()
	if done {
		c.onComplete()
	}
	return Verified, err
}

// UnselectWord removes word from the assembled phrase. It reports false if
// the word was not selected.
func (c *Controller) UnselectWord(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.completed {
		return false
	}
	i := slices.Index(c.assembled, word)
	if i < 0 {
		return false
	}
	c.assembled = slices.Delete(c.assembled, i, i+1)
	return true
}

func (c *Controller) verifyStepLocked() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.completed:
		return ErrCompleted
	case c.step != StepVerifyPhrase:
		return &StepError{Step: c.step, Err: ErrWrongStep}
	}
	return nil
}

func (c *Controller) clearErrorLocked() {
	c.verifyError = false
	c.cancelResetLocked()
}

func (c *Controller) scheduleResetLocked() {
	c.cancelResetLocked()
	gen := c.resetGen
	c.resetTimer = time.AfterFunc(c.errorDelay, func() { c.expireError(gen) })
}

func (c *Controller) cancelResetLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.resetGen++
}

func (c *Controller) expireError(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.resetGen {
		c.mu.Unlock()
		return
	}
	c.verifyError = false
	c.resetTimer = nil
	hook := c.onErrorCleared
	c.mu.Unlock()

	c.log.Debug("verification error cleared", zap.Duration("after", c.errorDelay))
	if hook != nil {
		hook()
	}
}
