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
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cloud-exit/walletsetup/internal/config"
	"github.com/cloud-exit/walletsetup/internal/store"
	"github.com/cloud-exit/walletsetup/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether onboarding has been completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.StoreDir()); os.IsNotExist(err) {
			ui.Info("Onboarding has not been completed.")
			return nil
		}

		st, err := store.Open(store.Options{Dir: config.StoreDir(), ReadOnly: true})
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		rec, err := st.LoadRecord()
		if errors.Is(err, store.ErrNotFound) {
			ui.Info("Onboarding has not been completed.")
			return nil
		}
		if err != nil {
			return err
		}

		ui.Success("Onboarding completed.")
		ui.KeyValue("Completed at", rec.CompletedAt.Local().Format(time.RFC1123))
		ui.KeyValue("Phrase length", strconv.Itoa(rec.PhraseLength))
		ui.KeyValue("Password policy", rec.PasswordPolicy)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget that onboarding was completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return errors.New("reset removes the onboarding record; pass --force to confirm")
		}

		st, err := store.Open(store.Options{Dir: config.StoreDir()})
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(); err != nil {
			return err
		}
		logger.Info("onboarding record reset")
		ui.Success("Onboarding record removed.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Confirm the reset")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}
