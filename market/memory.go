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
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Errors the in-memory gateway raises where the real contract would revert.
// The texts mimic node-side revert messages because the client surfaces
// them verbatim.
var (
	ErrNotRegistered  = errors.New("execution reverted: user not registered")
	ErrNotSeller      = errors.New("execution reverted: caller is not a seller")
	ErrNotAdmin       = errors.New("execution reverted: caller is not an admin")
	ErrNotOwner       = errors.New("execution reverted: caller is not the owner")
	ErrRequestSettled = errors.New("execution reverted: request already processed")
	ErrProductSold    = errors.New("execution reverted: product is not available")
	ErrOwnListing     = errors.New("execution reverted: seller cannot buy own product")
	ErrWrongPayment   = errors.New("execution reverted: incorrect payment amount")
	ErrUnknownRecord  = errors.New("execution reverted: record does not exist")
)

// MemoryGateway is a Gateway backed by process memory instead of a chain.
// It reproduces the MarketPlace contract's observable semantics — role
// checks, one-way request transitions, availability flips, the append-only
// ledger — and backs dev mode and the workflow tests.
//
// The transacting account is whatever SetAccount was last given, standing
// in for the node-side signer.
type MemoryGateway struct {
	mu sync.Mutex

	owner   common.Address
	account common.Address

	users          map[common.Address]*User
	sellerRequests []*RoleRequest
	adminRequests  []*RoleRequest
	products       []*Product
	ledger         []*LedgerEntry

	now func() time.Time
}

// NewMemoryGateway creates an empty in-memory marketplace with the given
// deployment owner. The owner starts registered, matching a deployment
// script that registers the deployer.
func NewMemoryGateway(owner common.Address) *MemoryGateway {
	g := &MemoryGateway{
		owner:   owner,
		account: owner,
		users:   make(map[common.Address]*User),
		now:     time.Now,
	}
	g.users[owner] = &User{WalletAddress: owner}
	return g
}

// SetAccount switches the transacting account, like changing the unlocked
// signer on a node.
func (g *MemoryGateway) SetAccount(addr common.Address) {
	g.mu.Lock()
	g.account = addr
	g.mu.Unlock()
}

func (g *MemoryGateway) Users(addr common.Address) (*User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if u, ok := g.users[addr]; ok {
		cp := *u
		return &cp, nil
	}
	return &User{}, nil
}

func (g *MemoryGateway) Owner() (common.Address, error) {
	return g.owner, nil
}

func (g *MemoryGateway) RegisterUser(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.users[g.account]; !ok {
		g.users[g.account] = &User{WalletAddress: g.account}
	}
	return nil
}

func (g *MemoryGateway) RequestSellerVerification(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.users[g.account]; !ok {
		return ErrNotRegistered
	}
	g.sellerRequests = append(g.sellerRequests, &RoleRequest{
		ID:        uint64(len(g.sellerRequests) + 1),
		Applicant: g.account,
		Status:    StatusPending,
	})
	return nil
}

func (g *MemoryGateway) RequestAdminRole(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.users[g.account]; !ok {
		return ErrNotRegistered
	}
	g.adminRequests = append(g.adminRequests, &RoleRequest{
		ID:        uint64(len(g.adminRequests) + 1),
		Applicant: g.account,
		Status:    StatusPending,
	})
	return nil
}

func (g *MemoryGateway) SellerRequestCount() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(len(g.sellerRequests)), nil
}

func (g *MemoryGateway) SellerRequest(id uint64) (*RoleRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 1 || id > uint64(len(g.sellerRequests)) {
		return nil, ErrUnknownRecord
	}
	cp := *g.sellerRequests[id-1]
	return &cp, nil
}

func (g *MemoryGateway) AdminRequestCount() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(len(g.adminRequests)), nil
}

func (g *MemoryGateway) AdminRequest(id uint64) (*RoleRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 1 || id > uint64(len(g.adminRequests)) {
		return nil, ErrUnknownRecord
	}
	cp := *g.adminRequests[id-1]
	return &cp, nil
}

func (g *MemoryGateway) ProcessSellerRequest(ctx context.Context, id uint64, approve bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	caller, ok := g.users[g.account]
	if !ok || !caller.IsAdmin {
		return ErrNotAdmin
	}
	if id < 1 || id > uint64(len(g.sellerRequests)) {
		return ErrUnknownRecord
	}
	req := g.sellerRequests[id-1]
	if req.Status.Terminal() {
		return ErrRequestSettled
	}
	if approve {
		req.Status = StatusApproved
		if u, ok := g.users[req.Applicant]; ok {
			u.IsSeller = true
		}
	} else {
		req.Status = StatusRejected
	}
	return nil
}

func (g *MemoryGateway) ProcessAdminRequest(ctx context.Context, id uint64, approve bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.account != g.owner {
		return ErrNotOwner
	}
	if id < 1 || id > uint64(len(g.adminRequests)) {
		return ErrUnknownRecord
	}
	req := g.adminRequests[id-1]
	if req.Status.Terminal() {
		return ErrRequestSettled
	}
	if approve {
		req.Status = StatusApproved
		if u, ok := g.users[req.Applicant]; ok {
			u.IsAdmin = true
		}
	} else {
		req.Status = StatusRejected
	}
	return nil
}

func (g *MemoryGateway) SetSellerStatus(ctx context.Context, user common.Address, status bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	caller, ok := g.users[g.account]
	if g.account != g.owner && (!ok || !caller.IsAdmin) {
		return ErrNotAdmin
	}
	u, ok := g.users[user]
	if !ok {
		return nil
	}
	u.IsSeller = status
	return nil
}

func (g *MemoryGateway) SetAdminStatus(ctx context.Context, user common.Address, status bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.account != g.owner {
		return ErrNotOwner
	}
	u, ok := g.users[user]
	if !ok {
		return nil
	}
	u.IsAdmin = status
	return nil
}

func (g *MemoryGateway) ProductCount() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(len(g.products)), nil
}

func (g *MemoryGateway) Product(id uint64) (*Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 1 || id > uint64(len(g.products)) {
		return nil, ErrUnknownRecord
	}
	cp := *g.products[id-1]
	return &cp, nil
}

// ProductDetails reads the same backing array as Product; the contract
// exposes both accessors over one products mapping.
func (g *MemoryGateway) ProductDetails(id uint64) (*Product, error) {
	return g.Product(id)
}

func (g *MemoryGateway) ListProduct(ctx context.Context, name, imageRef string, price Price) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	caller, ok := g.users[g.account]
	if !ok || !caller.IsSeller {
		return ErrNotSeller
	}
	id := uint64(len(g.products) + 1)
	g.products = append(g.products, &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		ImageRef:    imageRef,
		IsAvailable: true,
	})
	g.ledger = append(g.ledger, &LedgerEntry{
		ID:        uint64(len(g.ledger) + 1),
		Type:      TxList,
		ProductID: id,
		Seller:    g.account,
		Price:     price,
		Timestamp: g.now(),
	})
	return nil
}

func (g *MemoryGateway) BuyProduct(ctx context.Context, id uint64, price Price) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 1 || id > uint64(len(g.products)) {
		return ErrUnknownRecord
	}
	p := g.products[id-1]
	if !p.IsAvailable {
		return ErrProductSold
	}
	if !p.Price.Equal(price) {
		return ErrWrongPayment
	}
	seller := g.sellerOf(id)
	if seller == g.account {
		return ErrOwnListing
	}
	p.IsAvailable = false
	g.ledger = append(g.ledger, &LedgerEntry{
		ID:        uint64(len(g.ledger) + 1),
		Type:      TxPurchase,
		ProductID: id,
		Buyer:     g.account,
		Seller:    seller,
		Price:     p.Price,
		Timestamp: g.now(),
	})
	return nil
}

// sellerOf finds the listing entry for a product. Callers hold g.mu.
func (g *MemoryGateway) sellerOf(productID uint64) common.Address {
	for _, e := range g.ledger {
		if e.Type == TxList && e.ProductID == productID {
			return e.Seller
		}
	}
	return common.Address{}
}

func (g *MemoryGateway) TransactionCount() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(len(g.ledger)), nil
}

func (g *MemoryGateway) Transaction(id uint64) (*LedgerEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 1 || id > uint64(len(g.ledger)) {
		return nil, fmt.Errorf("market: transaction %d: %w", id, ErrUnknownRecord)
	}
	cp := *g.ledger[id-1]
	return &cp, nil
}
