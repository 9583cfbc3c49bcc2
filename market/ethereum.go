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
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sumitbawane/HederaMarketPlace/contracts/marketplace"
)

// EthereumGateway implements Gateway against a deployed MarketPlace contract
// reached through an Ethereum-compatible JSON-RPC node (Hedera's relay
// speaks the same protocol). Every write submits a transaction and waits
// for it to be mined before returning, so callers observe confirmed state.
type EthereumGateway struct {
	mkt     *marketplace.MarketPlace
	backend bind.DeployBackend
}

// NewEthereumGateway wires a gateway to an already-deployed contract.
func NewEthereumGateway(mkt *marketplace.MarketPlace, backend bind.DeployBackend) *EthereumGateway {
	return &EthereumGateway{mkt: mkt, backend: backend}
}

// waitConfirmed blocks until the transaction is mined and checks the receipt.
func (g *EthereumGateway) waitConfirmed(ctx context.Context, tx *types.Transaction, action string) error {
	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return fmt.Errorf("market: %s: waiting for confirmation: %v", action, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("market: %s: transaction %s reverted", action, tx.Hash().Hex())
	}
	log.Debug("Write call confirmed", "action", action, "tx", tx.Hash().Hex(), "block", receipt.BlockNumber)
	return nil
}

func (g *EthereumGateway) Users(addr common.Address) (*User, error) {
	info, err := g.mkt.Users(addr)
	if err != nil {
		return nil, err
	}
	return &User{
		WalletAddress: info.WalletAddress,
		IsSeller:      info.IsSeller,
		IsAdmin:       info.IsAdmin,
	}, nil
}

func (g *EthereumGateway) Owner() (common.Address, error) {
	return g.mkt.Owner()
}

func (g *EthereumGateway) RegisterUser(ctx context.Context) error {
	tx, err := g.mkt.RegisterUser()
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "registerUser")
}

func (g *EthereumGateway) RequestSellerVerification(ctx context.Context) error {
	tx, err := g.mkt.RequestSellerVerification()
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "requestSellerVerification")
}

func (g *EthereumGateway) RequestAdminRole(ctx context.Context) error {
	tx, err := g.mkt.RequestAdminRole()
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "requestAdminRole")
}

func (g *EthereumGateway) SellerRequestCount() (uint64, error) {
	n, err := g.mkt.GetSellerRequestCount()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (g *EthereumGateway) SellerRequest(id uint64) (*RoleRequest, error) {
	info, err := g.mkt.GetSellerRequest(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return requestFromInfo(info), nil
}

func (g *EthereumGateway) AdminRequestCount() (uint64, error) {
	n, err := g.mkt.GetAdminRequestCount()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (g *EthereumGateway) AdminRequest(id uint64) (*RoleRequest, error) {
	info, err := g.mkt.AdminRequests(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return requestFromInfo(info), nil
}

func requestFromInfo(info *marketplace.RequestInfo) *RoleRequest {
	return &RoleRequest{
		ID:        info.ID.Uint64(),
		Applicant: info.Applicant,
		Status:    RequestStatus(info.Status),
	}
}

func (g *EthereumGateway) ProcessSellerRequest(ctx context.Context, id uint64, approve bool) error {
	tx, err := g.mkt.ProcessSellerRequest(new(big.Int).SetUint64(id), approve)
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "processSellerRequest")
}

func (g *EthereumGateway) ProcessAdminRequest(ctx context.Context, id uint64, approve bool) error {
	tx, err := g.mkt.ProcessAdminRequest(new(big.Int).SetUint64(id), approve)
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "processAdminRequest")
}

func (g *EthereumGateway) SetSellerStatus(ctx context.Context, user common.Address, status bool) error {
	tx, err := g.mkt.SetSellerStatus(user, status)
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "setSellerStatus")
}

func (g *EthereumGateway) SetAdminStatus(ctx context.Context, user common.Address, status bool) error {
	tx, err := g.mkt.SetAdminStatus(user, status)
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "setAdminStatus")
}

func (g *EthereumGateway) ProductCount() (uint64, error) {
	n, err := g.mkt.GetProductCount()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (g *EthereumGateway) Product(id uint64) (*Product, error) {
	info, err := g.mkt.Products(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return productFromInfo(info), nil
}

func (g *EthereumGateway) ProductDetails(id uint64) (*Product, error) {
	info, err := g.mkt.GetProductDetails(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return productFromInfo(info), nil
}

func productFromInfo(info *marketplace.ProductInfo) *Product {
	return &Product{
		ID:          info.ID.Uint64(),
		Name:        info.Name,
		Price:       PriceFromAtomic(info.Price),
		ImageRef:    info.IpfsHash,
		IsAvailable: info.IsAvailable,
	}
}

func (g *EthereumGateway) ListProduct(ctx context.Context, name, imageRef string, price Price) error {
	tx, err := g.mkt.ListProduct(name, imageRef, price.Atomic())
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "listProduct")
}

func (g *EthereumGateway) BuyProduct(ctx context.Context, id uint64, price Price) error {
	tx, err := g.mkt.BuyProduct(new(big.Int).SetUint64(id), price.Atomic())
	if err != nil {
		return err
	}
	return g.waitConfirmed(ctx, tx, "buyProduct")
}

func (g *EthereumGateway) TransactionCount() (uint64, error) {
	n, err := g.mkt.GetTransactionCount()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (g *EthereumGateway) Transaction(id uint64) (*LedgerEntry, error) {
	info, err := g.mkt.GetTransactionDetails(new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	return &LedgerEntry{
		ID:        info.ID.Uint64(),
		Type:      TxType(info.TxType),
		ProductID: info.ProductID.Uint64(),
		Buyer:     info.Buyer,
		Seller:    info.Seller,
		Price:     PriceFromAtomic(info.Price),
		Timestamp: time.Unix(info.Timestamp.Int64(), 0),
	}, nil
}
