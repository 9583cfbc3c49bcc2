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

// Package market implements the client-side workflows of the marketplace:
// registration and login, the seller/admin role-request and approval
// machinery, product listing and purchase, and the transaction ledger view.
// All authoritative state lives in the external MarketPlace contract; this
// package holds read-only snapshots and orchestrates calls against it.
package market

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RequestStatus mirrors the on-chain role-request status enum.
type RequestStatus uint8

const (
	StatusPending  RequestStatus = iota // awaiting an approver's decision
	StatusApproved                      // terminal
	StatusRejected                      // terminal
)

// String returns a human-readable status label.
func (s RequestStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status can never change again. Requests
// transition one-way: Pending → Approved or Pending → Rejected.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// TxType mirrors the on-chain transaction ledger entry type.
type TxType uint8

const (
	TxList     TxType = iota // a seller created a listing
	TxPurchase               // a buyer purchased a listing
)

// String returns a human-readable transaction type label.
func (t TxType) String() string {
	switch t {
	case TxList:
		return "List"
	case TxPurchase:
		return "Purchase"
	default:
		return "unknown"
	}
}

// User is the snapshot of an on-chain user record. An unregistered address
// reads back as the zero record.
type User struct {
	WalletAddress common.Address `json:"wallet_address"`
	IsSeller      bool           `json:"is_seller"`
	IsAdmin       bool           `json:"is_admin"`
}

// Registered reports whether the record belongs to a registered account.
// The contract stores the zero address for unregistered users.
func (u *User) Registered() bool {
	return u.WalletAddress != (common.Address{})
}

// RoleRequest is the snapshot of one seller-verification or admin-role
// request. IDs are monotonic and 1-based.
type RoleRequest struct {
	ID        uint64         `json:"id"`
	Applicant common.Address `json:"applicant"`
	Status    RequestStatus  `json:"status"`
}

// Product is the snapshot of an on-chain product listing. Availability flips
// to false on a successful purchase and never comes back; listings are never
// deleted.
type Product struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	ImageRef    string `json:"image_ref"` // IPFS CID or plain URL
	IsAvailable bool   `json:"is_available"`
}

// LedgerEntry is the snapshot of one append-only transaction ledger record.
type LedgerEntry struct {
	ID        uint64         `json:"id"`
	Type      TxType         `json:"tx_type"`
	ProductID uint64         `json:"product_id"`
	Buyer     common.Address `json:"buyer"`
	Seller    common.Address `json:"seller"`
	Price     Price          `json:"price"`
	Timestamp time.Time      `json:"timestamp"`
}
