// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package credstore persists client-local credentials and one-shot flags in
// BadgerDB. The core treats this storage as read-only at call time: tokens
// are read per request and never cached in memory, so a login or logout in
// one flow takes effect immediately in every other.
package credstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys. accessTokenKey matches the fixed key the web client uses in
// local storage so the two stay interchangeable in documentation and tooling.
const (
	accessTokenKey  = "fm_access_token"
	refreshTokenKey = "fm_refresh_token"
	onboardedKey    = "fm_onboarded"
)

// Store is a BadgerDB-backed credential store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the credential store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AccessToken returns the stored bearer token, or empty string when no
// credential is present. Absence is not an error: anonymous sessions are
// valid. Implements the API client's TokenSource.
func (s *Store) AccessToken() (string, error) {
	return s.get(accessTokenKey)
}

// RefreshToken returns the stored refresh token, or empty string.
func (s *Store) RefreshToken() (string, error) {
	return s.get(refreshTokenKey)
}

// SetTokens stores a token pair, replacing any previous credentials.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(accessTokenKey), []byte(accessToken)); err != nil {
			return fmt.Errorf("set access token: %w", err)
		}
		if err := txn.Set([]byte(refreshTokenKey), []byte(refreshToken)); err != nil {
			return fmt.Errorf("set refresh token: %w", err)
		}
		return nil
	})
}

// ClearTokens removes stored credentials, returning the store to an
// anonymous state. Clearing an already-anonymous store is a no-op.
func (s *Store) ClearTokens() error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(accessTokenKey)); err != nil {
			return fmt.Errorf("delete access token: %w", err)
		}
		if err := txn.Delete([]byte(refreshTokenKey)); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
		return nil
	})
}

// Onboarded reports whether the one-shot onboarding flag has been set.
func (s *Store) Onboarded() (bool, error) {
	val, err := s.get(onboardedKey)
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// SetOnboarded marks onboarding complete. The flag is never cleared by the
// client; a fresh store starts unset.
func (s *Store) SetOnboarded() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(onboardedKey), []byte("true"))
	})
}

// get reads a single key, mapping absence to empty string.
func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return value, nil
}
