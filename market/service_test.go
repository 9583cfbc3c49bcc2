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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRegisterAndRoles(t *testing.T) {
	ctx := context.Background()
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(owner)
	gw.SetAccount(addr)

	svc := NewService(gw, wallet, nil)
	defer svc.Close()
	api := NewAPI(svc)

	_, _, err := svc.Login.Connect("test")
	require.NoError(t, err)
	require.NoError(t, api.Register(ctx))

	user, err := svc.User()
	require.NoError(t, err)
	assert.True(t, user.Registered())

	rs := api.Roles()
	assert.True(t, rs.Ready)
	assert.False(t, rs.IsSeller)
}

func TestAPICatalogWorkflow(t *testing.T) {
	ctx := context.Background()
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(owner)
	gw.SetAccount(addr)
	require.NoError(t, gw.RegisterUser(ctx))
	gw.SetAccount(owner)
	require.NoError(t, gw.SetSellerStatus(ctx, addr, true))
	gw.SetAccount(addr)

	svc := NewService(gw, wallet, nil)
	defer svc.Close()
	api := NewAPI(svc)

	require.NoError(t, api.List(ctx, "Vintage radio", "0.05", "https://example.com/radio.png"))

	products, err := api.Browse()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Vintage radio", products[0].Name)

	activity, err := api.Activity()
	require.NoError(t, err)
	assert.Len(t, activity.Sales, 1)
}

func TestAPIPendingQueues(t *testing.T) {
	ctx := context.Background()
	wallet, addr := newTestWallet(t)
	gw := NewMemoryGateway(owner)
	gw.SetAccount(addr)
	require.NoError(t, gw.RegisterUser(ctx))
	require.NoError(t, gw.RequestSellerVerification(ctx))
	require.NoError(t, gw.RequestAdminRole(ctx))

	svc := NewService(gw, wallet, nil)
	defer svc.Close()
	api := NewAPI(svc)

	sellers, err := api.PendingSellerRequests()
	require.NoError(t, err)
	assert.Len(t, sellers, 1)

	admins, err := api.PendingAdminRequests()
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}
