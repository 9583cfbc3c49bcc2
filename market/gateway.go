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

	"github.com/ethereum/go-ethereum/common"
)

// Gateway is the interface the workflow layer uses to talk to the deployed
// MarketPlace contract. It abstracts the binding so the workflows are
// backend-agnostic: the real implementation wraps an Ethereum-style node,
// the in-memory one backs tests and dev mode.
//
// Write methods block until the transaction is confirmed — callers may
// assume the effect is observable by a subsequent read once they return.
type Gateway interface {
	// Users reads the user record for an address. Unregistered addresses
	// return the zero record, not an error.
	Users(addr common.Address) (*User, error)

	// Owner returns the contract owner set at deployment.
	Owner() (common.Address, error)

	// RegisterUser registers the session account.
	RegisterUser(ctx context.Context) error

	// RequestSellerVerification files a seller request for the session
	// account. Duplicate suppression is the contract's business.
	RequestSellerVerification(ctx context.Context) error

	// RequestAdminRole files an admin request for the session account.
	RequestAdminRole(ctx context.Context) error

	// SellerRequestCount returns the total number of seller requests.
	SellerRequestCount() (uint64, error)

	// SellerRequest reads one seller request by 1-based id.
	SellerRequest(id uint64) (*RoleRequest, error)

	// AdminRequestCount returns the total number of admin requests.
	AdminRequestCount() (uint64, error)

	// AdminRequest reads one admin request by 1-based id.
	AdminRequest(id uint64) (*RoleRequest, error)

	// ProcessSellerRequest approves or rejects a seller request (admin-only).
	ProcessSellerRequest(ctx context.Context, id uint64, approve bool) error

	// ProcessAdminRequest approves or rejects an admin request (owner-only).
	ProcessAdminRequest(ctx context.Context, id uint64, approve bool) error

	// SetSellerStatus grants or revokes seller rights unconditionally; no
	// prior request needs to exist.
	SetSellerStatus(ctx context.Context, user common.Address, status bool) error

	// SetAdminStatus grants or revokes admin rights unconditionally.
	SetAdminStatus(ctx context.Context, user common.Address, status bool) error

	// ProductCount returns the total number of products ever listed.
	ProductCount() (uint64, error)

	// Product reads one product by 1-based id.
	Product(id uint64) (*Product, error)

	// ProductDetails reads the same record through the contract's detail
	// accessor; the ledger view joins product status through it.
	ProductDetails(id uint64) (*Product, error)

	// ListProduct creates a listing for the session account (seller-only).
	ListProduct(ctx context.Context, name, imageRef string, price Price) error

	// BuyProduct purchases a product, attaching exactly the given price as
	// the payment value.
	BuyProduct(ctx context.Context, id uint64, price Price) error

	// TransactionCount returns the number of ledger entries.
	TransactionCount() (uint64, error)

	// Transaction reads one ledger entry by 1-based id.
	Transaction(id uint64) (*LedgerEntry, error)
}
