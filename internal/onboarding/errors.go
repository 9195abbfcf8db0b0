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
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhrase is returned when a recovery phrase fails validation.
	ErrInvalidPhrase = errors.New("invalid recovery phrase")
	// ErrNoCompletion is returned by New when no completion callback is given.
	ErrNoCompletion = errors.New("completion callback is required")

	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrTermsNotAccepted  = errors.New("terms not accepted")
	ErrPhraseNotVerified = errors.New("recovery phrase not verified")
	ErrUnknownWord       = errors.New("word is not part of the recovery phrase")
	ErrWrongStep         = errors.New("operation not available at this step")
	ErrNoRestore         = errors.New("restore is not supported")
	ErrCompleted         = errors.New("onboarding already completed")
	ErrClosed            = errors.New("onboarding session closed")
)

// StepError reports a rejected transition and the step it was attempted from.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
