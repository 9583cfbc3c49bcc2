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
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// RoleSet is the resolved privilege set for an account. Ready is false
// while the resolution failed or the wallet is absent; callers must treat
// a non-ready set as all-false rather than retrying themselves.
type RoleSet struct {
	IsSeller bool  `json:"is_seller"`
	IsAdmin  bool  `json:"is_admin"`
	IsOwner  bool  `json:"is_owner"`
	Ready    bool  `json:"ready"`
	Err      error `json:"-"`
}

// RoleResolver derives {seller, admin, owner} flags for the session account
// from contract reads. Results are cached per address for the session;
// the cache is dropped on wallet account-change events, never polled.
//
// Resolve never returns an error: any failure (absent wallet, dead RPC,
// missing contract) fails open to the all-false set with Err recorded.
type RoleResolver struct {
	gw     Gateway
	wallet *WalletSession

	mu    sync.Mutex
	cache map[common.Address]RoleSet

	unsubscribe func()
}

// NewRoleResolver creates a resolver and subscribes it to the wallet's
// account-change stream. Call Close when done.
func NewRoleResolver(gw Gateway, wallet *WalletSession) *RoleResolver {
	r := &RoleResolver{
		gw:     gw,
		wallet: wallet,
		cache:  make(map[common.Address]RoleSet),
	}
	ch, cancel := wallet.Subscribe()
	r.unsubscribe = cancel
	go func() {
		for addr := range ch {
			r.Invalidate()
			log.Debug("Role cache dropped on account change", "address", addr.Hex())
		}
	}()
	return r
}

// Resolve returns the role set for the connected account.
func (r *RoleResolver) Resolve() RoleSet {
	addr, ok := r.wallet.Account()
	if !ok {
		return RoleSet{Err: ErrNotConnected}
	}
	return r.ResolveAddress(addr)
}

// ResolveAddress returns the role set for a specific address.
func (r *RoleResolver) ResolveAddress(addr common.Address) RoleSet {
	r.mu.Lock()
	if rs, ok := r.cache[addr]; ok {
		r.mu.Unlock()
		return rs
	}
	r.mu.Unlock()

	user, err := r.gw.Users(addr)
	if err != nil {
		return RoleSet{Err: err}
	}
	owner, err := r.gw.Owner()
	if err != nil {
		return RoleSet{Err: err}
	}
	rs := RoleSet{
		IsSeller: user.IsSeller,
		IsAdmin:  user.IsAdmin,
		IsOwner:  strings.EqualFold(owner.Hex(), addr.Hex()),
		Ready:    true,
	}

	r.mu.Lock()
	r.cache[addr] = rs
	r.mu.Unlock()
	return rs
}

// Invalidate drops every cached role set. Called on account change and
// after any write that may have altered privileges.
func (r *RoleResolver) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[common.Address]RoleSet)
	r.mu.Unlock()
}

// Close detaches the resolver from the wallet's event stream.
func (r *RoleResolver) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}
