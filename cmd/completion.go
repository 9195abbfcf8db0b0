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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloud-exit/walletsetup/internal/ui"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell autocompletion",
	Long: `Generate autocompletion for your shell.

If no shell is specified, the current shell is detected automatically.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := ""
		if len(args) > 0 {
			shell = args[0]
		} else {
			shell = detectShell()
		}
		return generateCompletion(cmd.OutOrStdout(), shell)
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// detectShell returns the name of the user's current shell.
func detectShell() string {
	// Check $SHELL (login shell)
	if sh := os.Getenv("SHELL"); sh != "" {
		base := filepath.Base(sh)
		switch base {
		case "bash", "zsh", "fish":
			return base
		}
	}

	// Check parent process name via /proc on Linux
	ppidComm := fmt.Sprintf("/proc/%d/comm", os.Getppid())
	if data, err := os.ReadFile(ppidComm); err == nil {
		name := strings.TrimSpace(string(data))
		switch name {
		case "bash", "zsh", "fish":
			return name
		}
	}

	return "bash"
}

func generateCompletion(w io.Writer, shell string) error {
	var (
		err   error
		hints []string
	)
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
		hints = []string{
			"# To enable autocompletion, add this to your ~/.bashrc:",
			"#",
			"#   eval \"$(walletsetup completion bash)\"",
		}
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
		hints = []string{
			"# To enable autocompletion, add this to your ~/.zshrc:",
			"#",
			"#   eval \"$(walletsetup completion zsh)\"",
		}
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
		hints = []string{
			"# To enable autocompletion, run:",
			"#",
			"#   walletsetup completion fish > ~/.config/fish/completions/walletsetup.fish",
		}
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	if err != nil {
		return fmt.Errorf("generating %s completion: %w", shell, err)
	}
	showHints(hints...)
	return nil
}

// showHints prints usage hints to stderr, but only when stdout is a terminal
// (i.e., not being piped to eval or redirected to a file).
func showHints(lines ...string) {
	if !ui.IsTerminal(os.Stdout) {
		return
	}
	fmt.Fprintln(ui.Stderr)
	for _, line := range lines {
		fmt.Fprintln(ui.Stderr, line)
	}
}
