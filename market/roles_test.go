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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errGateway fails every read the resolver issues.
type errGateway struct {
	Gateway
}

var errRPCDown = errors.New("connection refused")

func (errGateway) Users(common.Address) (*User, error) { return nil, errRPCDown }
func (errGateway) Owner() (common.Address, error) { return common.Address{}, errRPCDown }

func TestResolveOwnerIsCaseInsensitive(t *testing.T) {
	wallet, addr := newTestWallet(t)
	// The gateway records the owner with different hex casing than the
	// wallet reports; resolution must still recognize it.
	gw := NewMemoryGateway(common.HexToAddress(addr.Hex()))
	resolver := NewRoleResolver(gw, wallet)
	defer resolver.Close()

	rs := resolver.Resolve()
	require.True(t, rs.Ready)
	assert.True(t, rs.IsOwner)
	assert.False(t, rs.IsSeller)
	assert.False(t, rs.IsAdmin)
}

func TestResolveFailsOpen(t *testing.T) {
	wallet, _ := newTestWallet(t)
	resolver := NewRoleResolver(errGateway{}, wallet)
	defer resolver.Close()

	rs := resolver.Resolve()
	assert.False(t, rs.Ready)
	assert.False(t, rs.IsSeller)
	assert.False(t, rs.IsAdmin)
	assert.False(t, rs.IsOwner)
	assert.ErrorIs(t, rs.Err, errRPCDown)
}

func TestResolveWithoutWallet(t *testing.T) {
	wallet := NewWalletSession(nil, nil)
	resolver := NewRoleResolver(NewMemoryGateway(common.Address{}), wallet)
	defer resolver.Close()

	rs := resolver.Resolve()
	assert.False(t, rs.Ready)
	assert.ErrorIs(t, rs.Err, ErrNotConnected)
}

func TestResolveCachesUntilInvalidated(t *testing.T) {
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(common.HexToAddress("0xffff000000000000000000000000000000000001"))
	gw.SetAccount(addr)
	require.NoError(t, gw.RegisterUser(context.Background()))

	resolver := NewRoleResolver(gw, wallet)
	defer resolver.Close()

	rs := resolver.Resolve()
	require.True(t, rs.Ready)
	require.False(t, rs.IsSeller)

	// Privileges change on-chain; the cached snapshot still serves.
	gw.mu.Lock()
	gw.users[addr].IsSeller = true
	gw.mu.Unlock()
	assert.False(t, resolver.Resolve().IsSeller)

	resolver.Invalidate()
	assert.True(t, resolver.Resolve().IsSeller)
}

func TestAccountChangeDropsRoleCache(t *testing.T) {
	wallet, addr := newTestWallet(t)
	second := addTestAccount(t, wallet)

	gw := NewMemoryGateway(common.HexToAddress("0xffff000000000000000000000000000000000001"))
	gw.SetAccount(addr)
	require.NoError(t, gw.RegisterUser(context.Background()))

	resolver := NewRoleResolver(gw, wallet)
	defer resolver.Close()
	require.False(t, resolver.Resolve().IsSeller)

	gw.mu.Lock()
	gw.users[addr].IsSeller = true
	gw.mu.Unlock()

	require.NoError(t, wallet.SwitchAccount(second, "test"))
	require.NoError(t, wallet.SwitchAccount(addr, "test"))

	// The invalidation goroutine races the assertion; give it a moment.
	assert.Eventually(t, func() bool {
		return resolver.ResolveAddress(addr).IsSeller
	}, time.Second, 10*time.Millisecond)
}
