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

import "fmt"

// Step identifies the active onboarding step.
type Step int

const (
	StepWelcome Step = iota
	StepCreatePassword
	StepBackupIntro
	StepShowPhrase
	StepVerifyPhrase
)

// StepCount is the number of onboarding steps.
const StepCount = int(StepVerifyPhrase) + 1

var stepNames = [...]string{
	StepWelcome:        "welcome",
	StepCreatePassword: "create-password",
	StepBackupIntro:    "backup-intro",
	StepShowPhrase:     "show-phrase",
	StepVerifyPhrase:   "verify-phrase",
}

func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Keys accepted by SetTerms. They match the checkbox keys of the views.
const (
	TermsBackup   = "backupTerms"
	TermsBackedUp = "backedUp"
)

// Outcome describes what a word selection did.
type Outcome int

const (
	// Unchanged means the word was already selected.
	Unchanged Outcome = iota
	// Collecting means the word was added and the phrase is still incomplete.
	Collecting
	// Verified means the assembled phrase matched and onboarding completed.
	Verified
	// Mismatch means the assembled phrase was wrong and has been cleared.
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Collecting:
		return "collecting"
	case Verified:
		return "verified"
	case Mismatch:
		return "mismatch"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// State is a snapshot of the wizard state.
type State struct {
	Step                  Step
	BackupTermsAccepted   bool
	BackedUpTermsAccepted bool
	Password              string
	ConfirmedPassword     string
	AssembledPhrase       []string
	VerifyError           bool
	Verified              bool
	Completed             bool
	PhraseLength          int
}

// Checking reports whether every word of the phrase has been assembled.
func (s State) Checking() bool {
	return s.PhraseLength > 0 && len(s.AssembledPhrase) == s.PhraseLength
}
