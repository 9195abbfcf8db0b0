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
	"io"
	"os"
	"time"

	"github.com/cloud-exit/walletsetup/internal/clipboard"
	"github.com/cloud-exit/walletsetup/internal/config"
	"github.com/cloud-exit/walletsetup/internal/onboarding"
	"github.com/cloud-exit/walletsetup/internal/store"
	"github.com/cloud-exit/walletsetup/internal/ui"
	"github.com/cloud-exit/walletsetup/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Run the onboarding wizard",
	Long: `Walk through wallet onboarding: set a password, back up the recovery
phrase and prove the backup by rebuilding the phrase from a shuffled word bank.

The recovery phrase is read from --phrase-file, or from stdin when the path is "-".`,
	Example: "  walletsetup onboard --phrase-file ~/phrase.txt\n  wallet-keygen | walletsetup onboard --phrase-file -",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("phrase-file")
		allowRestore, _ := cmd.Flags().GetBool("allow-restore")
		return runOnboard(cmd, path, allowRestore)
	},
}

func init() {
	onboardCmd.Flags().StringP("phrase-file", "p", "", "File holding the recovery phrase (\"-\" for stdin)")
	onboardCmd.Flags().Bool("allow-restore", false, "Offer restoring an existing wallet on the welcome screen")
	_ = onboardCmd.MarkFlagRequired("phrase-file")
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(cmd *cobra.Command, path string, allowRestore bool) error {
	fromStdin := path == "-"
	if !ui.IsTerminal(os.Stdout) || (!fromStdin && !ui.IsTerminal(os.Stdin)) {
		return errors.New("onboarding needs an interactive terminal")
	}

	if !config.ConfigExists() {
		if err := config.WriteDefaults(); err != nil {
			ui.Warnf("Could not write default configuration: %v", err)
		} else {
			ui.Debugf("Wrote default configuration to %s", config.ConfigFile())
		}
	}

	phrase, err := readPhrase(cmd.InOrStdin(), path, cfg.PhraseLength)
	if err != nil {
		return err
	}
	secrets.AddSecret(phrase.String(), "recovery phrase")

	clip, err := clipboard.New(cfg.Clipboard, os.Stderr)
	if err != nil {
		return err
	}

	logger.Info("onboarding started",
		zap.Int("words", phrase.Len()),
		zap.Stringer("password_policy", cfg.Policy()),
		zap.String("clipboard", cfg.Clipboard))

	result, err := wizard.Run(cmd.Context(), wizard.Options{
		Phrase:       phrase,
		Policy:       cfg.Policy(),
		ErrorDelay:   time.Duration(cfg.VerifyErrorDelay),
		Clipboard:    clip,
		Logger:       logger,
		AllowRestore: allowRestore,
		InputTTY:     fromStdin,
	})
	if errors.Is(err, wizard.ErrCancelled) {
		ui.Info("Onboarding cancelled. Nothing was saved.")
		ui.Info("Run 'walletsetup onboard' to start again.")
		return nil
	}
	if err != nil {
		return err
	}

	if result.Restore {
		logger.Info("restore requested")
		ui.Info("Restore requested. Import your existing recovery phrase with your wallet's restore flow.")
		return nil
	}

	if err := saveRecord(phrase.Len()); err != nil {
		return err
	}
	ui.Success("Recovery phrase verified. Your wallet is ready.")
	return nil
}

func readPhrase(stdin io.Reader, path string, wantLen int) (onboarding.Phrase, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return onboarding.Phrase{}, fmt.Errorf("reading recovery phrase: %w", err)
	}
	return onboarding.ParsePhrase(string(data), wantLen)
}

func saveRecord(words int) error {
	st, err := store.Open(store.Options{Dir: config.StoreDir()})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	rec := store.Record{
		CompletedAt:    time.Now().UTC(),
		PhraseLength:   words,
		PasswordPolicy: cfg.Policy().String(),
	}
	if err := st.SaveRecord(rec); err != nil {
		return fmt.Errorf("saving onboarding record: %w", err)
	}
	logger.Info("onboarding record saved", zap.Time("completed_at", rec.CompletedAt))
	return nil
}
