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
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloud-exit/walletsetup/internal/onboarding"
)

// poolColumns is the number of words per row in the verify word bank.
const poolColumns = 3

const statusTimeout = 2 * time.Second

// errorClearedMsg is sent when the controller clears the verification error.
type errorClearedMsg struct{}

// clearStatusMsg clears the status line. seq guards against clearing a
// newer status.
type clearStatusMsg struct{ seq int }

// Model is the bubbletea model for the onboarding wizard.
type Model struct {
	ctl *onboarding.Controller

	pwInput      textinput.Model
	confirmInput textinput.Model
	focus        int // 0=password, 1=confirm

	cursor    int // highlighted word in the verify pool
	status    string
	statusSeq int

	width     int
	height    int
	cancelled bool
	restore   bool
	completed bool
}

// NewModel creates a wizard model driving ctl.
func NewModel(ctl *onboarding.Controller) Model {
	return Model{
		ctl:          ctl,
		pwInput:      newPasswordInput("Password", true),
		confirmInput: newPasswordInput("Confirm password", false),
	}
}

func newPasswordInput(placeholder string, focused bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Width = 40
	ti.Prompt = "  "
	if focused {
		ti.Focus()
	}
	return ti
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case errorClearedMsg:
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
	}

	switch m.ctl.Step() {
	case onboarding.StepWelcome:
		return m.updateWelcome(msg)
	case onboarding.StepCreatePassword:
		return m.updatePassword(msg)
	case onboarding.StepBackupIntro:
		return m.updateBackupIntro(msg)
	case onboarding.StepShowPhrase:
		return m.updateShowPhrase(msg)
	case onboarding.StepVerifyPhrase:
		return m.updateVerify(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.completed || m.cancelled || m.restore {
		return ""
	}
	var content string
	switch m.ctl.Step() {
	case onboarding.StepWelcome:
		content = m.viewWelcome()
	case onboarding.StepCreatePassword:
		content = m.viewPassword()
	case onboarding.StepBackupIntro:
		content = m.viewBackupIntro()
	case onboarding.StepShowPhrase:
		content = m.viewShowPhrase()
	case onboarding.StepVerifyPhrase:
		content = m.viewVerify()
	}
	if m.status != "" {
		content += "\n\n" + successStyle.Render(m.status)
	}
	return content
}

// Cancelled returns true if the user quit the wizard.
func (m Model) Cancelled() bool { return m.cancelled }

// Completed returns true once the recovery phrase was verified.
func (m Model) Completed() bool { return m.completed }

// RestoreRequested returns true if the user chose to restore a wallet.
func (m Model) RestoreRequested() bool { return m.restore }

func (m Model) setStatus(s string) (Model, tea.Cmd) {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m Model) stepTitle(title string) string {
	n := int(m.ctl.Step()) + 1
	return titleStyle.Render(fmt.Sprintf("Step %d/%d — %s", n, onboarding.StepCount, title))
}

func checkbox(on bool) string {
	if on {
		return selectedStyle.Render("[x]")
	}
	return "[ ]"
}

// --- Welcome Step ---

func (m Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		_ = m.ctl.Advance()
	case "r":
		err := m.ctl.Restore()
		if errors.Is(err, onboarding.ErrNoRestore) {
			return m.setStatus("Restoring an existing wallet is not available here.")
		}
		if err == nil {
			m.restore = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Welcome to your new wallet"))
	b.WriteString("\n\n")
	b.WriteString("This wizard sets a password and walks you through backing up\n")
	b.WriteString("your recovery phrase.\n")
	b.WriteString(helpStyle.Render("Enter to set up a new wallet, r to restore, q to quit"))
	return b.String()
}

const logo = ` __      __   _ _     _
 \ \    / /_ _| | |___| |_
  \ \/\/ / _' | | / -_)  _|
   \_/\_/\__,_|_|_\___|\__|`

// --- Create Password Step ---

func (m Model) updatePassword(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m = m.toggleFocus()
			return m, nil
		case tea.KeyEnter:
			if m.focus == 0 {
				m = m.toggleFocus()
				return m, nil
			}
			if err := m.ctl.Advance(); err == nil {
				m.pwInput.Reset()
				m.confirmInput.Reset()
			}
			return m, nil
		case tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.pwInput, cmd = m.pwInput.Update(msg)
		m.ctl.SetPassword(m.pwInput.Value())
	} else {
		m.confirmInput, cmd = m.confirmInput.Update(msg)
		m.ctl.SetConfirmation(m.confirmInput.Value())
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	m.focus = (m.focus + 1) % 2
	if m.focus == 0 {
		m.pwInput.Focus()
		m.confirmInput.Blur()
	} else {
		m.pwInput.Blur()
		m.confirmInput.Focus()
	}
	return m
}

func (m Model) viewPassword() string {
	var b strings.Builder
	b.WriteString(m.stepTitle("Create a password"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("The password unlocks this wallet on this device."))
	b.WriteString("\n\n")

	label := func(s string, focused bool) string {
		if focused {
			return cursorStyle.Render("> " + s)
		}
		return dimStyle.Render("  " + s)
	}
	b.WriteString(label("Password", m.focus == 0))
	b.WriteString("\n")
	b.WriteString(m.pwInput.View())
	b.WriteString("\n\n")
	b.WriteString(label("Confirm password", m.focus == 1))
	b.WriteString("\n")
	b.WriteString(m.confirmInput.View())
	b.WriteString("\n")

	if m.ctl.PasswordBlocked() {
		st := m.ctl.State()
		if onboarding.PasswordsMismatch(st.Password, st.ConfirmedPassword) {
			b.WriteString("\n" + warnStyle.Render("Passwords do not match"))
		} else {
			b.WriteString("\n" + dimStyle.Render("Enter the same password in both fields"))
		}
		b.WriteString(helpStyle.Render("Tab to switch fields, Esc to quit"))
	} else {
		b.WriteString(helpStyle.Render("Tab to switch fields, Enter to continue, Esc to quit"))
	}
	return b.String()
}

// --- Backup Intro Step ---

func (m Model) updateBackupIntro(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case " ", "x":
			m.ctl.AcceptBackupTerms(!m.ctl.State().BackupTermsAccepted)
		case "enter":
			_ = m.ctl.Advance()
		case "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) viewBackupIntro() string {
	accepted := m.ctl.State().BackupTermsAccepted
	var b strings.Builder
	b.WriteString(m.stepTitle("Back up your wallet"))
	b.WriteString("\n\n")
	b.WriteString("Next you will see your recovery phrase. It is the only way to\n")
	b.WriteString("restore this wallet if you lose access to this device.\n\n")
	b.WriteString(fmt.Sprintf("%s I understand that if I lose my recovery phrase, I will not be able\n    to access my wallet.\n", checkbox(accepted)))
	if accepted {
		b.WriteString(helpStyle.Render("Space to toggle, Enter to continue, q to quit"))
	} else {
		b.WriteString(helpStyle.Render("Space to toggle, q to quit") + "  " + dimStyle.Render("(accept to continue)"))
	}
	return b.String()
}

// --- Show Phrase Step ---

func (m Model) updateShowPhrase(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "c":
			if m.ctl.CopyPhrase() {
				return m.setStatus("Recovery phrase copied to clipboard")
			}
		case " ", "x":
			m.ctl.AcceptBackedUp(!m.ctl.State().BackedUpTermsAccepted)
		case "enter":
			_ = m.ctl.Advance()
		case "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) viewShowPhrase() string {
	words := m.ctl.PhraseWords()
	accepted := m.ctl.State().BackedUpTermsAccepted

	var b strings.Builder
	b.WriteString(m.stepTitle("Your recovery phrase"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Write these words down in order and keep them somewhere safe."))
	b.WriteString("\n\n")
	b.WriteString(warnStyle.Render("WARNING:") + " never share your recovery phrase.\n")
	b.WriteString("Anyone with these words can take your funds forever.\n\n")

	cells := make([]string, len(words))
	for i, w := range words {
		cells[i] = fmt.Sprintf("%2d. %-10s", i+1, w)
	}
	b.WriteString(phraseBoxStyle.Render(grid(cells, poolColumns)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s I have backed up my recovery phrase somewhere safe.\n", checkbox(accepted)))
	if accepted {
		b.WriteString(helpStyle.Render("c to copy, Space to toggle, Enter to continue, q to quit"))
	} else {
		b.WriteString(helpStyle.Render("c to copy, Space to toggle, q to quit"))
	}
	return b.String()
}

// --- Verify Phrase Step ---

func (m Model) updateVerify(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	pool := m.ctl.Pool()
	switch key.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(pool)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-poolColumns >= 0 {
			m.cursor -= poolColumns
		}
	case "down", "j":
		if m.cursor+poolColumns < len(pool) {
			m.cursor += poolColumns
		}
	case "enter", " ":
		if m.cursor >= len(pool) {
			return m, nil
		}
		word := pool[m.cursor]
		if m.ctl.Selected(word) {
			m.ctl.UnselectWord(word)
			return m, nil
		}
		out, err := m.ctl.SelectWord(word)
		if err != nil {
			return m, nil
		}
		if out == onboarding.Verified {
			m.completed = true
			return m, tea.Quit
		}
	case "backspace", "u":
		if st := m.ctl.State(); len(st.AssembledPhrase) > 0 {
			m.ctl.UnselectWord(st.AssembledPhrase[len(st.AssembledPhrase)-1])
		}
	case "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewVerify() string {
	st := m.ctl.State()
	pool := m.ctl.Pool()

	var b strings.Builder
	b.WriteString(m.stepTitle("Verify your recovery phrase"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Select the words in the order they were shown."))
	b.WriteString("\n\n")

	picked := make([]string, len(st.AssembledPhrase))
	for i, w := range st.AssembledPhrase {
		picked[i] = fmt.Sprintf("%2d. %-10s", i+1, w)
	}
	box := phraseBoxStyle
	inner := grid(picked, poolColumns)
	if st.VerifyError {
		box = errorBoxStyle
		inner = errorStyle.Render("Recovery phrase did not match, please try again.")
	} else if inner == "" {
		inner = dimStyle.Render("No words selected")
	}
	b.WriteString(box.Render(inner))
	b.WriteString("\n\n")

	cells := make([]string, len(pool))
	for i, w := range pool {
		label := fmt.Sprintf("%-12s", w)
		switch {
		case i == m.cursor:
			label = cursorStyle.Render("> ") + selectedStyle.Render(label)
		case m.ctl.Selected(w):
			label = "  " + usedStyle.Render(label)
		default:
			label = "  " + label
		}
		cells[i] = label
	}
	b.WriteString(grid(cells, poolColumns))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d words", len(st.AssembledPhrase), st.PhraseLength)))
	b.WriteString(helpStyle.Render("Arrows to move, Enter to select or unselect, Backspace to undo, Esc to quit"))
	return b.String()
}

// grid lays cells out in rows of cols columns.
func grid(cells []string, cols int) string {
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, withGaps(cells[i:end])...))
	}
	return strings.Join(rows, "\n")
}

func withGaps(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, c)
	}
	return out
}
