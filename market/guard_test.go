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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnprivilegedAccountRedirectedFromGatedRoutes(t *testing.T) {
	none := RoleSet{Ready: true} // registered but no roles at all
	for _, route := range []string{RouteListProducts, RouteAdmin, RouteOwner} {
		assert.False(t, Allows(none, RequiredRole(route)), "route %s must be gated", route)
	}
	for _, route := range []string{RouteLogin, RouteHome, RouteTransactions} {
		assert.True(t, Allows(none, RequiredRole(route)), "route %s must stay open", route)
	}
}

func TestAllowsPerRole(t *testing.T) {
	cases := []struct {
		name string
		rs   RoleSet
		role Role
		want bool
	}{
		{"seller on seller route", RoleSet{IsSeller: true, Ready: true}, RoleSeller, true},
		{"seller on admin route", RoleSet{IsSeller: true, Ready: true}, RoleAdmin, false},
		{"admin on admin route", RoleSet{IsAdmin: true, Ready: true}, RoleAdmin, true},
		{"admin on owner route", RoleSet{IsAdmin: true, Ready: true}, RoleOwner, false},
		{"owner on owner route", RoleSet{IsOwner: true, Ready: true}, RoleOwner, true},
		{"anything on open route", RoleSet{}, RoleAny, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allows(tc.rs, tc.role), tc.name)
	}
}

func TestGuardFailsClosedWhenResolutionNotReady(t *testing.T) {
	// The resolver fails open to all-false, but the guard must not let a
	// failed resolution through a gated door.
	failed := RoleSet{IsSeller: true, IsAdmin: true, IsOwner: true, Ready: false}
	assert.False(t, Allows(failed, RoleSeller))
	assert.False(t, Allows(failed, RoleAdmin))
	assert.False(t, Allows(failed, RoleOwner))
}

func TestAuthorizeRedirectsToLogin(t *testing.T) {
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(common.HexToAddress("0xffff000000000000000000000000000000000001"))
	gw.SetAccount(addr)
	require.NoError(t, gw.RegisterUser(context.Background()))

	resolver := NewRoleResolver(gw, wallet)
	defer resolver.Close()
	guard := NewRouteGuard(resolver)

	allowed, redirect := guard.Authorize(RouteListProducts)
	assert.False(t, allowed)
	assert.Equal(t, RouteLogin, redirect)

	allowed, _ = guard.Authorize(RouteHome)
	assert.True(t, allowed)
}

func TestAuthorizeAdmitsOwner(t *testing.T) {
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(addr) // wallet account deployed the contract
	resolver := NewRoleResolver(gw, wallet)
	defer resolver.Close()
	guard := NewRouteGuard(resolver)

	allowed, _ := guard.Authorize(RouteOwner)
	assert.True(t, allowed)
}
