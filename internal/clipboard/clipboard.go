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

// Package clipboard writes text to the system clipboard or, over SSH, to the
// terminal via OSC 52.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Modes accepted by New.
const (
	ModeAuto   = "auto"
	ModeSystem = "system"
	ModeOSC52  = "osc52"
	ModeNone   = "none"
)

// ErrDisabled is returned by a Writer created with ModeNone.
var ErrDisabled = errors.New("clipboard disabled")

// Writer writes text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// systemWriteAll is swapped out in tests.
var systemWriteAll = clipboard.WriteAll

// System uses the platform clipboard (pbcopy, xclip, wl-copy, ...).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no system clipboard utility found")
	}
	return systemWriteAll(text)
}

// OSC52 asks the terminal emulator to set the clipboard.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) WriteAll(text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}

// Fallback tries each writer in order and returns the first success.
type Fallback []Writer

func (f Fallback) WriteAll(text string) error {
	var errs []error
	for _, w := range f {
		err := w.WriteAll(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type disabled struct{}

func (disabled) WriteAll(string) error { return ErrDisabled }

// New returns the Writer for a config mode. out receives OSC 52 sequences.
func New(mode string, out io.Writer) (Writer, error) {
	switch mode {
	case "", ModeAuto:
		return Fallback{System{}, OSC52{Out: out}}, nil
	case ModeSystem:
		return System{}, nil
	case ModeOSC52:
		return OSC52{Out: out}, nil
	case ModeNone:
		return disabled{}, nil
	}
	return nil, fmt.Errorf("unknown clipboard mode %q", mode)
}
