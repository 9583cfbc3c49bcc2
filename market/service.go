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

// Service bundles every marketplace workflow behind one injected Gateway
// and WalletSession:
//  1. Connect a wallet and register the account
//  2. Browse the catalog and buy products
//  3. List products as a verified seller
//  4. File and settle seller/admin role requests
//  5. Revoke roles and read the transaction ledger
//
// Each user action is one short read/write sequence against the contract;
// the contract owns all authoritative state.
type Service struct {
	gw     Gateway
	wallet *WalletSession

	Roles        *RoleResolver
	Guard        *RouteGuard
	Login        *LoginFlow
	SellerQueue  *RequestQueue
	AdminQueue   *RequestQueue
	Catalog      *Catalog
	Ledger       *LedgerView
}

// NewService wires the workflows together. pinner may be nil when no
// pinning service is configured.
func NewService(gw Gateway, wallet *WalletSession, pinner AssetPinner) *Service {
	roles := NewRoleResolver(gw, wallet)
	return &Service{
		gw:          gw,
		wallet:      wallet,
		Roles:       roles,
		Guard:       NewRouteGuard(roles),
		Login:       NewLoginFlow(gw, wallet),
		SellerQueue: NewSellerRequestQueue(gw),
		AdminQueue:  NewAdminRequestQueue(gw),
		Catalog:     NewCatalog(gw, pinner),
		Ledger:      NewLedgerView(gw),
	}
}

// Account returns the connected wallet account.
func (s *Service) Account() (common.Address, bool) {
	return s.wallet.Account()
}

// User reads the on-chain record of the connected account.
func (s *Service) User() (*User, error) {
	addr, ok := s.wallet.Account()
	if !ok {
		return nil, ErrNotConnected
	}
	return s.gw.Users(addr)
}

// Activity loads the connected account's partitioned ledger view.
func (s *Service) Activity() (*AccountActivity, error) {
	addr, ok := s.wallet.Account()
	if !ok {
		return nil, ErrNotConnected
	}
	return s.Ledger.Activity(addr)
}

// ProcessSellerRequest settles one seller request and drops the role cache,
// since an approval changes the applicant's privileges.
func (s *Service) ProcessSellerRequest(ctx context.Context, id uint64, approve bool) ([]*RoleRequest, error) {
	pending, err := s.SellerQueue.Process(ctx, id, approve)
	if err != nil {
		return nil, err
	}
	s.Roles.Invalidate()
	return pending, nil
}

// ProcessAdminRequest settles one admin request and drops the role cache.
func (s *Service) ProcessAdminRequest(ctx context.Context, id uint64, approve bool) ([]*RoleRequest, error) {
	pending, err := s.AdminQueue.Process(ctx, id, approve)
	if err != nil {
		return nil, err
	}
	s.Roles.Invalidate()
	return pending, nil
}

// RevokeSeller strips seller rights from an address and drops the role cache.
func (s *Service) RevokeSeller(ctx context.Context, user common.Address) error {
	if err := s.SellerQueue.Revoke(ctx, user); err != nil {
		return err
	}
	s.Roles.Invalidate()
	return nil
}

// RevokeAdmin strips admin rights from an address and drops the role cache.
func (s *Service) RevokeAdmin(ctx context.Context, user common.Address) error {
	if err := s.AdminQueue.Revoke(ctx, user); err != nil {
		return err
	}
	s.Roles.Invalidate()
	return nil
}

// Close detaches the service's subscriptions from the wallet.
func (s *Service) Close() {
	s.Roles.Close()
	s.Login.Close()
}

// ──────────────────────────────────────────────
//  JSON-RPC API (for node integration)
// ──────────────────────────────────────────────

// API exposes the marketplace service over JSON-RPC when registered with a
// go-ethereum node. Method namespace: "market".
type API struct {
	service *Service
}

// NewAPI creates a JSON-RPC API backed by the given service.
func NewAPI(service *Service) *API {
	return &API{service: service}
}

// Roles handles "market_roles" RPC calls.
func (api *API) Roles() RoleSet {
	return api.service.Roles.Resolve()
}

// Register handles "market_register" RPC calls.
func (api *API) Register(ctx context.Context) error {
	return api.service.Login.Register(ctx)
}

// Browse handles "market_browse" RPC calls.
func (api *API) Browse() ([]*Product, error) {
	return api.service.Catalog.Browse()
}

// List handles "market_list" RPC calls. The image reference is a URL or
// an already-pinned CID; file uploads go through the HTTP surface.
func (api *API) List(ctx context.Context, name, price, imageURL string) error {
	return api.service.Catalog.List(ctx, &ListingInput{
		Name:     name,
		Price:    price,
		ImageURL: imageURL,
	})
}

// Buy handles "market_buy" RPC calls.
func (api *API) Buy(ctx context.Context, productID uint64) error {
	return api.service.Catalog.Buy(ctx, productID)
}

// PendingSellerRequests handles "market_pendingSellerRequests" RPC calls.
func (api *API) PendingSellerRequests() ([]*RoleRequest, error) {
	return api.service.SellerQueue.Pending()
}

// PendingAdminRequests handles "market_pendingAdminRequests" RPC calls.
func (api *API) PendingAdminRequests() ([]*RoleRequest, error) {
	return api.service.AdminQueue.Pending()
}

// Activity handles "market_activity" RPC calls for the session account.
func (api *API) Activity() (*AccountActivity, error) {
	return api.service.Activity()
}
