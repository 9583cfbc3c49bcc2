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
	"io"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sellerAddr = common.HexToAddress("0xffff000000000000000000000000000000000011")
	buyerAddr  = common.HexToAddress("0xffff000000000000000000000000000000000012")
)

// marketWithSeller registers a verified seller and one 0.05 listing.
func marketWithSeller(t *testing.T) *MemoryGateway {
	t.Helper()
	ctx := context.Background()
	gw := NewMemoryGateway(owner)

	gw.SetAccount(sellerAddr)
	require.NoError(t, gw.RegisterUser(ctx))
	gw.SetAccount(owner)
	require.NoError(t, gw.SetSellerStatus(ctx, sellerAddr, true))

	gw.SetAccount(sellerAddr)
	price, err := ParsePrice("0.05")
	require.NoError(t, err)
	require.NoError(t, gw.ListProduct(ctx, "Vintage radio", "QmRadioHash", price))

	gw.SetAccount(buyerAddr)
	require.NoError(t, gw.RegisterUser(ctx))
	return gw
}

func TestBrowseReadsFullCatalog(t *testing.T) {
	gw := marketWithSeller(t)
	catalog := NewCatalog(gw, nil)

	products, err := catalog.Browse()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Vintage radio", products[0].Name)
	assert.Equal(t, "0.05", products[0].Price.String())
	assert.True(t, products[0].IsAvailable)
}

func TestListRejectsIncompleteSubmission(t *testing.T) {
	catalog := NewCatalog(marketWithSeller(t), nil)
	ctx := context.Background()

	cases := []*ListingInput{
		{Price: "1", ImageURL: "https://example.com/a.png"},   // no name
		{Name: "Lamp", ImageURL: "https://example.com/a.png"}, // no price
		{Name: "Lamp", Price: "1"},                            // no image
	}
	for i, input := range cases {
		assert.ErrorIs(t, catalog.List(ctx, input), ErrMissingFields, "case %d", i)
	}
}

func TestListRejectsBadPriceBeforeAnyWrite(t *testing.T) {
	gw := marketWithSeller(t)
	catalog := NewCatalog(gw, nil)

	err := catalog.List(context.Background(), &ListingInput{
		Name:     "Lamp",
		Price:    "0.123456789",
		ImageURL: "https://example.com/a.png",
	})
	assert.ErrorIs(t, err, ErrPricePrecision)

	count, err := gw.ProductCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count, "rejected listing must not reach the contract")
}

// recordingPinner records uploads and returns a fixed CID.
type recordingPinner struct {
	filename string
}

func (p *recordingPinner) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	p.filename = filename
	return "QmStubHash", nil
}

func (p *recordingPinner) GatewayURL(ref string) string {
	return "https://gateway.ipfs.io/ipfs/" + strings.TrimPrefix(ref, "ipfs://")
}

func TestListUploadsImageFile(t *testing.T) {
	gw := marketWithSeller(t)
	pinner := &recordingPinner{}
	catalog := NewCatalog(gw, pinner)
	gw.SetAccount(sellerAddr)

	err := catalog.List(context.Background(), &ListingInput{
		Name:      "Lamp",
		Price:     "1.5",
		ImageFile: strings.NewReader("fake image bytes"),
		ImageName: "lamp.png",
		ImageSize: 16,
	})
	require.NoError(t, err)
	assert.Equal(t, "lamp.png", pinner.filename)

	p, err := gw.Product(2)
	require.NoError(t, err)
	assert.Equal(t, "QmStubHash", p.ImageRef)
}

func TestListImageValidation(t *testing.T) {
	catalog := NewCatalog(marketWithSeller(t), &recordingPinner{})
	ctx := context.Background()

	err := catalog.List(ctx, &ListingInput{
		Name: "Lamp", Price: "1",
		ImageFile: strings.NewReader("x"), ImageName: "notes.pdf", ImageSize: 1,
	})
	assert.ErrorIs(t, err, ErrNotAnImage)

	err = catalog.List(ctx, &ListingInput{
		Name: "Lamp", Price: "1",
		ImageFile: strings.NewReader("x"), ImageName: "huge.png", ImageSize: MaxImageSize + 1,
	})
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestBuyHappyPath(t *testing.T) {
	gw := marketWithSeller(t)
	catalog := NewCatalog(gw, nil)
	gw.SetAccount(buyerAddr)

	require.NoError(t, catalog.Buy(context.Background(), 1))

	p, err := gw.Product(1)
	require.NoError(t, err)
	assert.False(t, p.IsAvailable, "availability flips on purchase and never restocks")
}

func TestBuySoldOutRejectedClientSide(t *testing.T) {
	gw := marketWithSeller(t)
	catalog := NewCatalog(gw, nil)
	gw.SetAccount(buyerAddr)
	require.NoError(t, catalog.Buy(context.Background(), 1))

	writes, _ := gw.TransactionCount()
	err := catalog.Buy(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSoldOut)

	after, _ := gw.TransactionCount()
	assert.Equal(t, writes, after, "sold-out purchase must not submit a write call")
}

func TestBuyOwnListingSurfacesRawError(t *testing.T) {
	gw := marketWithSeller(t)
	catalog := NewCatalog(gw, nil)
	gw.SetAccount(sellerAddr)

	err := catalog.Buy(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase failed")
	assert.Contains(t, err.Error(), ErrOwnListing.Error())
}
