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
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Wallet errors.
var (
	ErrNoWallet     = errors.New("market: no wallet available")
	ErrNotConnected = errors.New("market: wallet not connected")
	ErrNoAccounts   = errors.New("market: keystore holds no accounts")
)

// WalletSession is the process-wide wallet state, passed explicitly to every
// component that needs the current account instead of living in an ambient
// global. It wraps a go-ethereum keystore for signing and publishes
// account-change events to subscribers; consumers react to the stream,
// they never poll.
type WalletSession struct {
	ks      *keystore.KeyStore
	chainID *big.Int

	mu      sync.Mutex
	account common.Address
	opts    *bind.TransactOpts
	subs    map[int]chan common.Address
	nextSub int
}

// NewWalletSession creates a disconnected session over a keystore.
// A nil keystore models the wallet-absent case: Connect fails with
// ErrNoWallet and every role resolution fails open.
func NewWalletSession(ks *keystore.KeyStore, chainID *big.Int) *WalletSession {
	return &WalletSession{
		ks:      ks,
		chainID: chainID,
		subs:    make(map[int]chan common.Address),
	}
}

// Connect selects and unlocks the first keystore account, the equivalent of
// requesting account access from a browser wallet. It is a no-op if the
// session is already connected.
func (w *WalletSession) Connect(passphrase string) (common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ks == nil {
		return common.Address{}, ErrNoWallet
	}
	if w.opts != nil {
		return w.account, nil
	}
	accts := w.ks.Accounts()
	if len(accts) == 0 {
		return common.Address{}, ErrNoAccounts
	}
	return w.useAccount(accts[0], passphrase)
}

// SwitchAccount unlocks a different keystore account and notifies every
// subscriber. Role caches and views hang off those notifications.
func (w *WalletSession) SwitchAccount(addr common.Address, passphrase string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ks == nil {
		return ErrNoWallet
	}
	acct, err := w.ks.Find(accounts.Account{Address: addr})
	if err != nil {
		return err
	}
	if _, err := w.useAccount(acct, passphrase); err != nil {
		return err
	}
	for _, ch := range w.subs {
		select {
		case ch <- addr:
		default: // slow subscriber, drop rather than block the wallet
		}
	}
	return nil
}

// useAccount unlocks an account and rebuilds transact opts. The opts struct
// is mutated in place so a contract binding holding the pointer keeps
// signing as the new account after a switch. Callers hold w.mu.
func (w *WalletSession) useAccount(acct accounts.Account, passphrase string) (common.Address, error) {
	if err := w.ks.Unlock(acct, passphrase); err != nil {
		return common.Address{}, err
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(w.ks, acct, w.chainID)
	if err != nil {
		return common.Address{}, err
	}
	w.account = acct.Address
	if w.opts == nil {
		w.opts = opts
	} else {
		*w.opts = *opts
	}
	log.Info("Wallet account selected", "address", acct.Address.Hex())
	return acct.Address, nil
}

// Account returns the connected account, or false if disconnected.
func (w *WalletSession) Account() (common.Address, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account, w.opts != nil
}

// TransactOpts returns signing options for the connected account.
func (w *WalletSession) TransactOpts() (*bind.TransactOpts, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.opts == nil {
		return nil, ErrNotConnected
	}
	return w.opts, nil
}

// Subscribe registers for account-change notifications. The returned
// cancel function must be called when the subscriber goes away.
func (w *WalletSession) Subscribe() (<-chan common.Address, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	ch := make(chan common.Address, 1)
	w.subs[id] = ch
	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if sub, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(sub)
		}
	}
}
