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

// PasswordPolicy decides when the create-password step may continue.
type PasswordPolicy int

const (
	// AllowEmptyConfirmation only blocks when both fields are filled and
	// differ. An empty password or confirmation does not block.
	AllowEmptyConfirmation PasswordPolicy = iota
	// RequireConfirmation blocks unless both fields are non-empty and equal.
	RequireConfirmation
)

var policyNames = map[PasswordPolicy]string{
	AllowEmptyConfirmation: "allow-empty-confirmation",
	RequireConfirmation:    "require-confirmation",
}

func (p PasswordPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PasswordPolicy(%d)", int(p))
}

// ParsePasswordPolicy maps a config value to a PasswordPolicy.
func ParsePasswordPolicy(s string) (PasswordPolicy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown password policy %q", s)
}

// PasswordsMismatch reports whether both values are non-empty and unequal.
func PasswordsMismatch(password, confirm string) bool {
	if password == "" || confirm == "" {
		return false
	}
	return password != confirm
}

// Blocks reports whether the continue action must stay disabled.
func (p PasswordPolicy) Blocks(password, confirm string) bool {
	if p == RequireConfirmation {
		return password == "" || password != confirm
	}
	return PasswordsMismatch(password, confirm)
}
