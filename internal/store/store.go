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
// Package store persists the onboarding record in a BadgerDB database. It
// never stores the password or the recovery phrase.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no onboarding record exists.
var ErrNotFound = errors.New("no onboarding record")

var recordKey = []byte("onboarding/record")

// Record describes a completed onboarding.
type Record struct {
	CompletedAt    time.Time `yaml:"completed_at"`
	PhraseLength   int       `yaml:"phrase_length"`
	PasswordPolicy string    `yaml:"password_policy"`
}

// Options configures a Store.
type Options struct {
	Dir      string // on-disk directory (ignored when InMemory is true)
	InMemory bool   // use in-memory storage (for tests)
	ReadOnly bool   // open in read-only mode (no directory lock acquired)
}

// Store wraps a Badger database.
type Store struct {
	db *badger.DB
}

// Open creates or opens the store. If the WAL is corrupted (e.g. the process
// was killed mid-write), it recovers by opening in write mode first to allow
// truncation, then re-opening in the requested mode.
func Open(opts Options) (*Store, error) {
	bopts := badgerOptions(opts)

	db, err := badger.Open(bopts)
	if err != nil && !opts.InMemory && needsTruncation(err) {
		rdb, rerr := badger.Open(badgerOptions(Options{Dir: opts.Dir}))
		if rerr != nil {
			return nil, err // return original error if recovery fails
		}
		if cerr := rdb.Close(); cerr != nil {
			return nil, cerr
		}
		db, err = badger.Open(bopts)
	}
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func badgerOptions(opts Options) badger.Options {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // suppress badger logs
	if opts.ReadOnly {
		bopts = bopts.WithReadOnly(true).WithBypassLockGuard(true)
	}
	return bopts
}

func needsTruncation(err error) bool {
	return strings.Contains(err.Error(), "Log truncate required") ||
		strings.Contains(err.Error(), "MANIFEST has unsupported version")
}

// SaveRecord stores r, replacing any existing record.
func (s *Store) SaveRecord(r Record) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey, data)
	})
}

// LoadRecord returns the stored record or ErrNotFound.
func (s *Store) LoadRecord() (Record, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	return r, nil
}

// Reset deletes the record. Deleting a missing record is not an error.
func (s *Store) Reset() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey)
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
