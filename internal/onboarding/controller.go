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

// Package onboarding implements the wallet onboarding state machine: step
// sequencing, the password gate, and recovery phrase verification.
package onboarding

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultErrorDelay is how long a verification error stays visible.
const DefaultErrorDelay = 3 * time.Second

// Clipboard receives the exported recovery phrase.
type Clipboard interface {
	WriteAll(text string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithErrorDelay sets how long the verification error flag stays set.
func WithErrorDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.errorDelay = d
		}
	}
}

// WithPasswordPolicy sets the create-password gate.
func WithPasswordPolicy(p PasswordPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithRand sets the source used to shuffle the word pool.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithClipboard sets where CopyPhrase writes to.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) { c.clip = cb }
}

// WithRestoreHandler enables Restore on the welcome step.
func WithRestoreHandler(fn func()) Option {
	return func(c *Controller) { c.onRestore = fn }
}

// WithErrorClearedHook registers fn to run after the delayed reset clears
// the verification error. fn runs on the timer goroutine.
func WithErrorClearedHook(fn func()) Option {
	return func(c *Controller) { c.onErrorCleared = fn }
}

// Controller drives one onboarding session. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	phrase         Phrase
	onComplete     func()
	onRestore      func()
	onErrorCleared func()
	policy         PasswordPolicy
	errorDelay     time.Duration
	rng            *rand.Rand
	clip           Clipboard
	log            *zap.Logger

	step        Step
	backupTerms bool
	backedUp    bool
	password    string
	confirm     string
	assembled   []string
	pool        []string
	verifyError bool
	verified    bool
	completed   bool
	closed      bool

	// resetTimer clears verifyError. resetGen is bumped whenever a pending
	// reset is cancelled so a timer that already fired becomes a no-op.
	resetTimer *time.Timer
	resetGen   uint64
}

// New creates a controller for phrase. onComplete is invoked exactly once,
// when the verified final step is advanced.
func New(phrase Phrase, onComplete func(), opts ...Option) (*Controller, error) {
	if phrase.Len() == 0 {
		return nil, fmt.Errorf("%w: no words", ErrInvalidPhrase)
	}
	if onComplete == nil {
		return nil, ErrNoCompletion
	}
	c := &Controller{
		phrase:     phrase,
		onComplete: onComplete,
		errorDelay: DefaultErrorDelay,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c, nil
}

// Step returns the active step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Policy returns the password policy in effect.
func (c *Controller) Policy() PasswordPolicy { return c.policy }

// PhraseWords returns the recovery phrase in order, for display.
func (c *Controller) PhraseWords() []string { return c.phrase.Words() }

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Step:                  c.step,
		BackupTermsAccepted:   c.backupTerms,
		BackedUpTermsAccepted: c.backedUp,
		Password:              c.password,
		ConfirmedPassword:     c.confirm,
		AssembledPhrase:       slices.Clone(c.assembled),
		VerifyError:           c.verifyError,
		Verified:              c.verified,
		Completed:             c.completed,
		PhraseLength:          c.phrase.Len(),
	}
}

// SetPassword records the password field. Ignored once the session is
// closed or complete.
func (c *Controller) SetPassword(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.completed {
		return
	}
	c.password = v
}

// SetConfirmation records the confirmation field.
func (c *Controller) SetConfirmation(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.completed {
		return
	}
	c.confirm = v
}

// PasswordBlocked reports whether the password gate keeps the create-password
// step from continuing.
func (c *Controller) PasswordBlocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.Blocks(c.password, c.confirm)
}

// AcceptBackupTerms sets the backup-intro acknowledgement.
func (c *Controller) AcceptBackupTerms(accepted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.completed {
		return
	}
	c.backupTerms = accepted
}

// AcceptBackedUp sets the show-phrase "I have backed it up" acknowledgement.
func (c *Controller) AcceptBackedUp(accepted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.completed {
		return
	}
	c.backedUp = accepted
}

// SetTerms sets a checkbox by key (TermsBackup or TermsBackedUp).
func (c *Controller) SetTerms(key string, selected bool) error {
	switch key {
	case TermsBackup:
		c.AcceptBackupTerms(selected)
	case TermsBackedUp:
		c.AcceptBackedUp(selected)
	default:
		return fmt.Errorf("unknown terms key %q", key)
	}
	return nil
}

// Advance moves to the next step once the current step's preconditions hold.
// On the verified final step it invokes the completion callback instead.
func (c *Controller) Advance() error {
	c.mu.Lock()
	done, err := c.advanceLocked()
	c.mu.Unlock()
	if done {
		c.onComplete()
	}
	return err
}

// advanceLocked reports whether the completion callback must be invoked.
// The caller invokes it after releasing the lock.
func (c *Controller) advanceLocked() (bool, error) {
	if c.closed {
		return false, ErrClosed
	}
	if c.completed {
		return false, ErrCompleted
	}
	if err := c.guardLocked(); err != nil {
		c.log.Debug("advance rejected", zap.Stringer("step", c.step), zap.Error(err))
		return false, &StepError{Step: c.step, Err: err}
	}
	if c.step == StepVerifyPhrase {
		c.completed = true
		c.cancelResetLocked()
		c.log.Info("onboarding completed", zap.Int("words", c.phrase.Len()))
		return true, nil
	}
	c.step++
	if c.step == StepVerifyPhrase && c.pool == nil {
		c.pool = shuffleWords(c.phrase.words, c.rng)
	}
	c.log.Debug("advanced", zap.Stringer("step", c.step))
	return false, nil
}

func (c *Controller) guardLocked() error {
	switch c.step {
	case StepCreatePassword:
		if c.policy.Blocks(c.password, c.confirm) {
			return ErrPasswordMismatch
		}
	case StepBackupIntro:
		if !c.backupTerms {
			return ErrTermsNotAccepted
		}
	case StepShowPhrase:
		if !c.backedUp {
			return ErrTermsNotAccepted
		}
	case StepVerifyPhrase:
		if !c.verified {
			return ErrPhraseNotVerified
		}
	}
	return nil
}

// Restore hands off to the restore flow. Only valid on the welcome step.
func (c *Controller) Restore() error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.step != StepWelcome:
		step := c.step
		c.mu.Unlock()
		return &StepError{Step: step, Err: ErrWrongStep}
	case c.onRestore == nil:
		c.mu.Unlock()
		return ErrNoRestore
	}
	fn := c.onRestore
	c.mu.Unlock()
	fn()
	return nil
}

// CopyPhrase writes the space-joined phrase to the clipboard. Failures are
// logged and reported as false; there is no retry.
func (c *Controller) CopyPhrase() bool {
	if c.clip == nil {
		c.log.Warn("could not copy recovery phrase: no clipboard configured")
		return false
	}
	if err := c.clip.WriteAll(c.phrase.String()); err != nil {
		c.log.Warn("could not copy recovery phrase", zap.Error(err))
		return false
	}
	c.log.Debug("recovery phrase copied", zap.Int("words", c.phrase.Len()))
	return true
}

// Close ends the session. A pending error reset is cancelled and later
// transitions return ErrClosed. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelResetLocked()
}
