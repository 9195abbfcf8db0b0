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
package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/cloud-exit/walletsetup/internal/onboarding"
	"github.com/spf13/cobra"
)

// errPasswordBlocked makes check-password exit non-zero.
var errPasswordBlocked = errors.New("password confirmation does not pass")

var checkPasswordCmd = &cobra.Command{
	Use:   "check-password",
	Short: "Check a password and its confirmation against the password policy",
	Long: `Reads the password and its confirmation from stdin, one per line, and
reports whether the create-password step would let them through.

The policy defaults to the configured password_policy.`,
	Example: "  printf 'secret\\nsecret\\n' | walletsetup check-password --policy require-confirmation",
	RunE: func(cmd *cobra.Command, args []string) error {
		policy := cfg.Policy()
		if name, _ := cmd.Flags().GetString("policy"); name != "" {
			p, err := onboarding.ParsePasswordPolicy(name)
			if err != nil {
				return err
			}
			policy = p
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		var lines [2]string
		for i := range lines {
			if !scanner.Scan() {
				break
			}
			lines[i] = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		out := cmd.OutOrStdout()
		if policy.Blocks(lines[0], lines[1]) {
			fmt.Fprintf(out, "blocked (%s)\n", policy)
			return errPasswordBlocked
		}
		fmt.Fprintf(out, "ok (%s)\n", policy)
		return nil
	},
}

func init() {
	checkPasswordCmd.Flags().String("policy", "", "Password policy: allow-empty-confirmation or require-confirmation")
	rootCmd.AddCommand(checkPasswordCmd)
}
