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
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// XDG-compliant paths for walletsetup configuration and data.
var (
	// Home is the configuration directory (~/.config/walletsetup).
	Home string
	// Data is the data directory (~/.local/share/walletsetup).
	Data string
)

func init() {
	Home = filepath.Join(xdgConfig(), "walletsetup")
	Data = filepath.Join(xdgData(), "walletsetup")
}

func xdgConfig() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
	}
	return filepath.Join(homeDir(), ".config")
}

func xdgData() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("LOCALAPPDATA"); v != "" {
			return v
		}
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// ConfigFile returns the path to config.yaml.
func ConfigFile() string {
	return filepath.Join(Home, "config.yaml")
}

// StoreDir returns the directory of the onboarding record store.
func StoreDir() string {
	return filepath.Join(Data, "store")
}

// DefaultLogFile returns the default log file path.
func DefaultLogFile() string {
	return filepath.Join(Data, "walletsetup.log")
}
