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
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

// AssetPinner is the interface for pushing listing images to a
// content-pinning service. Implementations live outside this package;
// the shipped one targets Pinata.
type AssetPinner interface {
	// Upload pins a file and returns its content hash (CID).
	Upload(ctx context.Context, filename string, data io.Reader) (string, error)

	// GatewayURL resolves a content hash or ipfs:// URI to a fetchable URL.
	GatewayURL(ref string) string
}

// MaxImageSize is the client-side ceiling on listing image uploads.
const MaxImageSize = 5 << 20 // 5 MiB

// imageExtensions are the upload types accepted client-side.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Listing and purchase errors.
var (
	ErrMissingFields = errors.New("market: all fields are required")
	ErrNotAnImage    = errors.New("market: only image files can be uploaded")
	ErrImageTooLarge = errors.New("market: image exceeds the 5 MiB upload ceiling")
	ErrNoPinner      = errors.New("market: no pinning service configured")
	ErrSoldOut       = errors.New("market: product is sold out")
)

// ListingInput is a seller's new-product submission. Exactly one image
// source is used: a direct URL, or a file pinned through the AssetPinner.
type ListingInput struct {
	Name     string
	Price    string // decimal units, e.g. "0.05"
	ImageURL string

	ImageFile io.Reader
	ImageName string
	ImageSize int64
}

// Catalog drives the product listing and purchase workflows.
type Catalog struct {
	gw      Gateway
	pinner  AssetPinner
	actions *actionRegistry
}

// NewCatalog creates a catalog. pinner may be nil when uploads are not
// configured; URL-based listings still work.
func NewCatalog(gw Gateway, pinner AssetPinner) *Catalog {
	return &Catalog{gw: gw, pinner: pinner, actions: newActionRegistry()}
}

// Browse reads the full product catalog, one sequential read per index.
func (c *Catalog) Browse() ([]*Product, error) {
	total, err := c.gw.ProductCount()
	if err != nil {
		return nil, err
	}
	products := make([]*Product, 0, total)
	for id := uint64(1); id <= total; id++ {
		p, err := c.gw.Product(id)
		if err != nil {
			return nil, fmt.Errorf("market: loading product %d: %v", id, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// List validates a seller's submission and creates the listing. The whole
// submission fails if any required field is absent; the price is encoded to
// the contract's 8-decimal fixed point at this one boundary.
func (c *Catalog) List(ctx context.Context, input *ListingInput) error {
	if input.Name == "" || input.Price == "" {
		return ErrMissingFields
	}
	if input.ImageURL == "" && input.ImageFile == nil {
		return ErrMissingFields
	}
	price, err := ParsePrice(input.Price)
	if err != nil {
		return err
	}

	imageRef := input.ImageURL
	if input.ImageFile != nil {
		imageRef, err = c.pinImage(ctx, input)
		if err != nil {
			return err
		}
	}

	return c.actions.run("list", func() error {
		if err := c.gw.ListProduct(ctx, input.Name, imageRef, price); err != nil {
			return err
		}
		log.Info("Product listed", "name", input.Name, "price", price, "image", imageRef)
		return nil
	})
}

// pinImage enforces the client-side type and size checks, then uploads.
func (c *Catalog) pinImage(ctx context.Context, input *ListingInput) (string, error) {
	if c.pinner == nil {
		return "", ErrNoPinner
	}
	ext := strings.ToLower(path.Ext(input.ImageName))
	if !imageExtensions[ext] {
		return "", ErrNotAnImage
	}
	if input.ImageSize > MaxImageSize {
		return "", ErrImageTooLarge
	}
	cid, err := c.pinner.Upload(ctx, input.ImageName, input.ImageFile)
	if err != nil {
		return "", fmt.Errorf("market: image upload failed: %v", err)
	}
	return cid, nil
}

// Buy purchases a product, attaching exactly the listed price. Unavailable
// products are rejected before any write call goes out. Everything else —
// a seller buying their own listing included — fails with the node's raw
// error text; no revert-reason decoding happens here.
func (c *Catalog) Buy(ctx context.Context, productID uint64) error {
	p, err := c.gw.Product(productID)
	if err != nil {
		return err
	}
	if !p.IsAvailable {
		return ErrSoldOut
	}
	key := fmt.Sprintf("buy/%d", productID)
	return c.actions.run(key, func() error {
		if err := c.gw.BuyProduct(ctx, productID, p.Price); err != nil {
			return fmt.Errorf("market: purchase failed: %v", err)
		}
		log.Info("Product purchased", "id", productID, "price", p.Price)
		return nil
	})
}

// ImageURL resolves a product's stored image reference to a fetchable URL,
// stripping an ipfs:// prefix when present. Plain URLs pass through.
func (c *Catalog) ImageURL(p *Product) string {
	ref := p.ImageRef
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if c.pinner == nil {
		return ref
	}
	return c.pinner.GatewayURL(ref)
}
