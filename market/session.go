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
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// SessionState is the login workflow state.
type SessionState int

const (
	Disconnected SessionState = iota
	ConnectedUnregistered
	ConnectedRegistered
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case ConnectedUnregistered:
		return "connected-unregistered"
	case ConnectedRegistered:
		return "connected-registered"
	default:
		return "unknown"
	}
}

// Login workflow errors.
var (
	ErrAlreadyRegistered = errors.New("market: account already registered")
	ErrRegisterFirst     = errors.New("market: connect and register before using the marketplace")
)

// LoginFlow drives the registration workflow:
//
//	Disconnected → ConnectedUnregistered → ConnectedRegistered
//
// State only advances on confirmed outcomes; any failure leaves it exactly
// where it was, so there is no partially-registered state. An account
// change throws the flow back to Disconnected and the user logs in again.
type LoginFlow struct {
	gw     Gateway
	wallet *WalletSession

	mu          sync.Mutex
	state       SessionState
	registering bool

	unsubscribe func()
}

// NewLoginFlow creates a login workflow bound to a wallet session.
func NewLoginFlow(gw Gateway, wallet *WalletSession) *LoginFlow {
	f := &LoginFlow{gw: gw, wallet: wallet}
	ch, cancel := wallet.Subscribe()
	f.unsubscribe = cancel
	go func() {
		for range ch {
			f.mu.Lock()
			f.state = Disconnected
			f.mu.Unlock()
		}
	}()
	return f
}

// State returns the current workflow state.
func (f *LoginFlow) State() SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Connect requests wallet access and checks whether the account is already
// registered on-chain. The returned state is ConnectedRegistered or
// ConnectedUnregistered on success.
func (f *LoginFlow) Connect(passphrase string) (common.Address, SessionState, error) {
	addr, err := f.wallet.Connect(passphrase)
	if err != nil {
		return common.Address{}, f.State(), err
	}
	user, err := f.gw.Users(addr)
	if err != nil {
		return addr, f.State(), err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if user.Registered() {
		f.state = ConnectedRegistered
	} else {
		f.state = ConnectedUnregistered
	}
	log.Info("Wallet connected", "address", addr.Hex(), "state", f.state)
	return addr, f.state, nil
}

// Register submits the on-chain registration and waits for confirmation.
// The state flips to ConnectedRegistered only once the call finalizes.
// A second Register while one is settling is rejected outright.
func (f *LoginFlow) Register(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.state == Disconnected:
		f.mu.Unlock()
		return ErrNotConnected
	case f.state == ConnectedRegistered:
		f.mu.Unlock()
		return ErrAlreadyRegistered
	case f.registering:
		f.mu.Unlock()
		return ErrActionInFlight
	}
	f.registering = true
	f.mu.Unlock()

	err := f.gw.RegisterUser(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.registering = false
	if err != nil {
		return err
	}
	f.state = ConnectedRegistered
	log.Info("Account registered")
	return nil
}

// Close detaches the flow from the wallet's event stream.
func (f *LoginFlow) Close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
}
