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
package ui

import (
	"fmt"
	"io"
	"os"
)

// Verbose controls whether debug messages are printed.
var Verbose bool

// Stdout and Stderr are where messages go. Tests replace them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Info prints an informational message to stdout.
func Info(msg string) {
	fmt.Fprintf(Stdout, "%s[INFO]%s %s\n", Cyan, NC, msg)
}

// Infof prints a formatted informational message to stdout.
func Infof(format string, a ...any) {
	Info(fmt.Sprintf(format, a...))
}

// Success prints a success message to stdout.
func Success(msg string) {
	fmt.Fprintf(Stdout, "%s[OK]%s %s\n", Green, NC, msg)
}

// Successf prints a formatted success message to stdout.
func Successf(format string, a ...any) {
	Success(fmt.Sprintf(format, a...))
}

// Warn prints a warning message to stderr.
func Warn(msg string) {
	fmt.Fprintf(Stderr, "%s[WARN]%s %s\n", Yellow, NC, msg)
}

// Warnf prints a formatted warning message to stderr.
func Warnf(format string, a ...any) {
	Warn(fmt.Sprintf(format, a...))
}

// Error prints an error message to stderr.
func Error(msg string) {
	fmt.Fprintf(Stderr, "%s[ERROR]%s %s\n", Red, NC, msg)
}

// Errorf prints a formatted error message to stderr.
func Errorf(format string, a ...any) {
	Error(fmt.Sprintf(format, a...))
}

// Debug prints a debug message to stderr (only when Verbose is true).
func Debug(msg string) {
	if Verbose {
		fmt.Fprintf(Stderr, "%s[DEBUG]%s %s\n", Dim, NC, msg)
	}
}

// Debugf prints a formatted debug message to stderr.
func Debugf(format string, a ...any) {
	Debug(fmt.Sprintf(format, a...))
}

// KeyValue prints an aligned "key: value" line to stdout.
func KeyValue(key, value string) {
	fmt.Fprintf(Stdout, "  %s%-16s%s %s\n", Bold, key+":", NC, value)
}
