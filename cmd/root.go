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
	"fmt"
	"os"

	"github.com/cloud-exit/walletsetup/internal/config"
	"github.com/cloud-exit/walletsetup/internal/logging"
	"github.com/cloud-exit/walletsetup/internal/redactor"
	"github.com/cloud-exit/walletsetup/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set by ldflags at build time.
var Version = "0.1.0"

var (
	cfg    *config.Config
	logger = zap.NewNop()
	// secrets are scrubbed from the log file.
	secrets = redactor.New()
)

// skipConfigCommands do not need a valid configuration file.
var skipConfigCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
}

var rootCmd = &cobra.Command{
	Use:           "walletsetup",
	Short:         "Wallet onboarding wizard",
	Long:          "walletsetup - Create a wallet password and back up its recovery phrase",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v

		if skipConfigCommands[cmd.Name()] {
			cfg = config.DefaultConfig()
			return nil
		}

		loaded, err := config.LoadOrDefault()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
		ui.Debugf("Using configuration %s", config.ConfigFile())

		l, err := logging.New(logging.Options{
			Level:       cfg.LogLevel,
			File:        cfg.LogFile,
			Verbose:     v,
			DefaultFile: config.DefaultLogFile(),
			Redactor:    secrets,
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "walletsetup version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("walletsetup version {{.Version}}\n")
	rootCmd.Version = Version
}

// Execute runs the root command.
func Execute() {
	if err := config.EnsureDirs(); err != nil {
		ui.Warnf("Could not create walletsetup directories: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}
