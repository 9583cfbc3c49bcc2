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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerRow is one ledger entry joined with the product's current
// availability for display.
type LedgerRow struct {
	LedgerEntry
	ProductStatus string `json:"product_status"` // "Available" or "Sold Out"
}

// AccountActivity partitions an account's ledger entries for display:
// listings the account made as a seller, and purchases it made as a buyer.
type AccountActivity struct {
	Sales     []*LedgerRow `json:"sales"`
	Purchases []*LedgerRow `json:"purchases"`
}

// LedgerView reads the on-chain transaction ledger. Every call re-fetches
// everything from index 1 — no pagination, caching, or incremental sync —
// which keeps the display trivially consistent with confirmed state at the
// cost of scaling linearly with ledger size.
type LedgerView struct {
	gw Gateway
}

// NewLedgerView creates a ledger view over a gateway.
func NewLedgerView(gw Gateway) *LedgerView {
	return &LedgerView{gw: gw}
}

// Activity loads the full ledger and keeps the entries relevant to the
// account: List entries it made as seller under Sales, Purchase entries it
// made as buyer under Purchases. An entry never lands in both partitions.
func (v *LedgerView) Activity(account common.Address) (*AccountActivity, error) {
	total, err := v.gw.TransactionCount()
	if err != nil {
		return nil, err
	}

	activity := &AccountActivity{}
	for id := uint64(1); id <= total; id++ {
		entry, err := v.gw.Transaction(id)
		if err != nil {
			return nil, fmt.Errorf("market: loading transaction %d: %v", id, err)
		}
		if entry.Buyer != account && entry.Seller != account {
			continue
		}

		row := &LedgerRow{LedgerEntry: *entry, ProductStatus: "Available"}
		if p, err := v.gw.ProductDetails(entry.ProductID); err == nil && !p.IsAvailable {
			row.ProductStatus = "Sold Out"
		}

		switch {
		case entry.Type == TxList && entry.Seller == account:
			activity.Sales = append(activity.Sales, row)
		case entry.Type == TxPurchase && entry.Buyer == account:
			activity.Purchases = append(activity.Purchases, row)
		}
	}
	return activity, nil
}
