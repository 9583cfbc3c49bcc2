// Copyright 2025 The HederaMarketPlace Authors
// This file is part of the hederamarket library.
//
// The hederamarket library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The hederamarket library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the hederamarket library. If not, see <http://www.gnu.org/licenses/>.

package market

import (
	"errors"
	"sync"
)

// ErrActionInFlight is returned when a write action is resubmitted before
// the previous submission has settled.
var ErrActionInFlight = errors.New("market: action already in progress")

// actionRegistry tracks in-flight write actions by key so a double-submit
// (say, a double-click on Approve) cannot issue duplicate transactions.
// The flag clears when the action settles, success or failure.
type actionRegistry struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newActionRegistry() *actionRegistry {
	return &actionRegistry{busy: make(map[string]bool)}
}

// begin marks an action in flight. It fails with ErrActionInFlight if the
// same key is already settling.
func (r *actionRegistry) begin(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy[key] {
		return ErrActionInFlight
	}
	r.busy[key] = true
	return nil
}

// end clears the in-flight flag for a key.
func (r *actionRegistry) end(key string) {
	r.mu.Lock()
	delete(r.busy, key)
	r.mu.Unlock()
}

// run executes fn under the in-flight flag for key.
func (r *actionRegistry) run(key string, fn func() error) error {
	if err := r.begin(key); err != nil {
		return err
	}
	defer r.end(key)
	return fn()
}
