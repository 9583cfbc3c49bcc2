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

func TestActivityPartitionsByRole(t *testing.T) {
	ctx := context.Background()
	gw := marketWithSeller(t) // seller listed product 1, buyer registered
	gw.SetAccount(buyerAddr)
	price, _ := ParsePrice("0.05")
	require.NoError(t, gw.BuyProduct(ctx, 1, price))

	view := NewLedgerView(gw)

	// The seller sees the listing under Sales, not the buyer's purchase.
	activity, err := view.Activity(sellerAddr)
	require.NoError(t, err)
	require.Len(t, activity.Sales, 1)
	assert.Equal(t, TxList, activity.Sales[0].Type)
	assert.Equal(t, uint64(1), activity.Sales[0].ProductID)
	assert.Empty(t, activity.Purchases, "a sale of the seller's product is not the seller's purchase")

	// The buyer sees only the purchase.
	activity, err = view.Activity(buyerAddr)
	require.NoError(t, err)
	assert.Empty(t, activity.Sales)
	require.Len(t, activity.Purchases, 1)
	assert.Equal(t, TxPurchase, activity.Purchases[0].Type)
	assert.Equal(t, sellerAddr, activity.Purchases[0].Seller)
}

func TestActivityExcludesUnrelatedAccounts(t *testing.T) {
	gw := marketWithSeller(t)
	view := NewLedgerView(gw)

	activity, err := view.Activity(common.HexToAddress("0xffff0000000000000000000000000000000000ee"))
	require.NoError(t, err)
	assert.Empty(t, activity.Sales)
	assert.Empty(t, activity.Purchases)
}

func TestActivityJoinsProductStatus(t *testing.T) {
	ctx := context.Background()
	gw := marketWithSeller(t)
	view := NewLedgerView(gw)

	activity, err := view.Activity(sellerAddr)
	require.NoError(t, err)
	require.Len(t, activity.Sales, 1)
	assert.Equal(t, "Available", activity.Sales[0].ProductStatus)

	gw.SetAccount(buyerAddr)
	price, _ := ParsePrice("0.05")
	require.NoError(t, gw.BuyProduct(ctx, 1, price))

	// The same List entry now reports the post-purchase status.
	activity, err = view.Activity(sellerAddr)
	require.NoError(t, err)
	require.Len(t, activity.Sales, 1)
	assert.Equal(t, "Sold Out", activity.Sales[0].ProductStatus)
}

// detailGateway reports products as sold through the detail accessor only,
// exposing which read path the ledger join takes.
type detailGateway struct {
	*MemoryGateway
}

func (g *detailGateway) ProductDetails(id uint64) (*Product, error) {
	p, err := g.MemoryGateway.ProductDetails(id)
	if err != nil {
		return nil, err
	}
	p.IsAvailable = false
	return p, nil
}

func TestActivityJoinsThroughDetailAccessor(t *testing.T) {
	gw := marketWithSeller(t)
	view := NewLedgerView(&detailGateway{MemoryGateway: gw})

	activity, err := view.Activity(sellerAddr)
	require.NoError(t, err)
	require.Len(t, activity.Sales, 1)
	assert.Equal(t, "Sold Out", activity.Sales[0].ProductStatus)
}

func TestActivityOnEmptyLedger(t *testing.T) {
	gw := NewMemoryGateway(owner)
	view := NewLedgerView(gw)

	activity, err := view.Activity(owner)
	require.NoError(t, err)
	assert.Empty(t, activity.Sales)
	assert.Empty(t, activity.Purchases)
}
