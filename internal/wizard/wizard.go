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
// Package wizard is the terminal front-end of the onboarding flow.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/walletsetup/internal/onboarding"
	"go.uber.org/zap"
)

// ErrCancelled is returned when the user quits before finishing.
var ErrCancelled = errors.New("onboarding cancelled")

// Options configures a wizard run.
type Options struct {
	Phrase       onboarding.Phrase
	Policy       onboarding.PasswordPolicy
	ErrorDelay   time.Duration
	Clipboard    onboarding.Clipboard
	Logger       *zap.Logger
	AllowRestore bool
	// InputTTY reads keys from the controlling terminal instead of stdin,
	// for when stdin carried the phrase.
	InputTTY bool
}

// Result describes how the wizard ended.
type Result struct {
	Completed bool // recovery phrase verified
	Restore   bool // user asked to restore an existing wallet instead
}

// Run executes the onboarding wizard until the phrase is verified, the user
// asks to restore, or the user quits (ErrCancelled).
func Run(ctx context.Context, opts Options) (*Result, error) {
	var (
		prog      atomic.Pointer[tea.Program]
		completed bool
		restore   bool
	)

	ctlOpts := []onboarding.Option{
		onboarding.WithLogger(opts.Logger),
		onboarding.WithErrorDelay(opts.ErrorDelay),
		onboarding.WithPasswordPolicy(opts.Policy),
		onboarding.WithClipboard(opts.Clipboard),
		onboarding.WithErrorClearedHook(func() {
			if p := prog.Load(); p != nil {
				p.Send(errorClearedMsg{})
			}
		}),
	}
	if opts.AllowRestore {
		ctlOpts = append(ctlOpts, onboarding.WithRestoreHandler(func() { restore = true }))
	}

	ctl, err := onboarding.New(opts.Phrase, func() { completed = true }, ctlOpts...)
	if err != nil {
		return nil, err
	}
	defer ctl.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(NewModel(ctl), progOpts...)
	prog.Store(p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	wm := finalModel.(Model)
	switch {
	case restore && wm.RestoreRequested():
		return &Result{Restore: true}, nil
	case completed && wm.Completed():
		return &Result{Completed: true}, nil
	}
	return nil, ErrCancelled
}
