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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// RequestKind distinguishes the two parallel approval workflows.
type RequestKind string

const (
	SellerRequests RequestKind = "seller" // processed by admins
	AdminRequests  RequestKind = "admin"  // processed by the owner
)

// RequestQueue drives one role-request/approval workflow. Both instances
// have identical shape: applicants file requests, an authorized approver
// scans the full 1..count ledger for Pending entries and settles them one
// by one, and after every confirmed write the list is reloaded in full —
// no optimistic local update, the display always reflects confirmed
// on-chain state.
type RequestQueue struct {
	gw      Gateway
	kind    RequestKind
	actions *actionRegistry

	count   func() (uint64, error)
	get     func(id uint64) (*RoleRequest, error)
	submit  func(ctx context.Context) error
	process func(ctx context.Context, id uint64, approve bool) error
	revoke  func(ctx context.Context, user common.Address, status bool) error
}

// NewSellerRequestQueue creates the seller-verification workflow.
func NewSellerRequestQueue(gw Gateway) *RequestQueue {
	return &RequestQueue{
		gw:      gw,
		kind:    SellerRequests,
		actions: newActionRegistry(),
		count:   gw.SellerRequestCount,
		get:     gw.SellerRequest,
		submit:  gw.RequestSellerVerification,
		process: gw.ProcessSellerRequest,
		revoke:  gw.SetSellerStatus,
	}
}

// NewAdminRequestQueue creates the admin-role workflow.
func NewAdminRequestQueue(gw Gateway) *RequestQueue {
	return &RequestQueue{
		gw:      gw,
		kind:    AdminRequests,
		actions: newActionRegistry(),
		count:   gw.AdminRequestCount,
		get:     gw.AdminRequest,
		submit:  gw.RequestAdminRole,
		process: gw.ProcessAdminRequest,
		revoke:  gw.SetAdminStatus,
	}
}

// Kind returns which workflow this queue drives.
func (q *RequestQueue) Kind() RequestKind {
	return q.kind
}

// Submit files a new request for the session account. The client does no
// duplicate suppression; the contract is the source of truth for
// uniqueness. A resubmission while one is settling is rejected.
func (q *RequestQueue) Submit(ctx context.Context) error {
	return q.actions.run("submit", func() error {
		if err := q.submit(ctx); err != nil {
			return err
		}
		log.Info("Role request submitted", "kind", q.kind)
		return nil
	})
}

// Pending scans the full 1..count range and returns only Pending requests.
// Reads are sequential, one per index; a failed read aborts the whole load.
func (q *RequestQueue) Pending() ([]*RoleRequest, error) {
	total, err := q.count()
	if err != nil {
		return nil, err
	}
	var pending []*RoleRequest
	for id := uint64(1); id <= total; id++ {
		req, err := q.get(id)
		if err != nil {
			return nil, fmt.Errorf("market: loading %s request %d: %v", q.kind, id, err)
		}
		if req.Status == StatusPending {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

// Process approves or rejects one request and, once the write confirms,
// reloads the pending list in full. The settled request is guaranteed to
// be absent from the returned list: its status transition is one-way.
func (q *RequestQueue) Process(ctx context.Context, id uint64, approve bool) ([]*RoleRequest, error) {
	key := fmt.Sprintf("process/%d", id)
	if err := q.actions.begin(key); err != nil {
		return nil, err
	}
	defer q.actions.end(key)

	if err := q.process(ctx, id, approve); err != nil {
		return nil, err
	}
	log.Info("Role request processed", "kind", q.kind, "id", id, "approved", approve)
	return q.Pending()
}

// Revoke unconditionally strips the role from an address. It is independent
// of the request ledger: no prior request needs to exist.
func (q *RequestQueue) Revoke(ctx context.Context, user common.Address) error {
	key := "revoke/" + user.Hex()
	return q.actions.run(key, func() error {
		if err := q.revoke(ctx, user, false); err != nil {
			return err
		}
		log.Info("Role revoked", "kind", q.kind, "address", user.Hex())
		return nil
	})
}
