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

// Package marketplace provides high-level Go bindings for the deployed
// MarketPlace contract. It covers user registration, the seller/admin
// role-request workflows, product listing, purchases, and the on-chain
// transaction ledger.
package marketplace

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/sumitbawane/HederaMarketPlace/contracts/marketplace/contract"
)

// MarketPlace is a high-level wrapper around the on-chain MarketPlace contract.
type MarketPlace struct {
	abi             abi.ABI
	address         common.Address
	contract        *bind.BoundContract
	contractBackend bind.ContractBackend
	transactOpts    *bind.TransactOpts
}

// NewMarketPlace connects to an already-deployed MarketPlace contract.
func NewMarketPlace(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*MarketPlace, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.MarketPlaceABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &MarketPlace{
		abi:             parsed,
		address:         addr,
		contract:        bound,
		contractBackend: backend,
		transactOpts:    opts,
	}, nil
}

// Address returns the bound contract address.
func (m *MarketPlace) Address() common.Address {
	return m.address
}

// ──────────────────────────────────────────────
//  Write methods
// ──────────────────────────────────────────────

// RegisterUser records the transacting account as a marketplace user.
func (m *MarketPlace) RegisterUser() (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "registerUser")
}

// RequestSellerVerification files a seller-verification request for the
// transacting account.
func (m *MarketPlace) RequestSellerVerification() (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "requestSellerVerification")
}

// RequestAdminRole files an admin-role request for the transacting account.
func (m *MarketPlace) RequestAdminRole() (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "requestAdminRole")
}

// ProcessSellerRequest approves or rejects a pending seller request (admin-only).
func (m *MarketPlace) ProcessSellerRequest(id *big.Int, approve bool) (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "processSellerRequest", id, approve)
}

// ProcessAdminRequest approves or rejects a pending admin request (owner-only).
func (m *MarketPlace) ProcessAdminRequest(id *big.Int, approve bool) (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "processAdminRequest", id, approve)
}

// SetSellerStatus grants or revokes seller rights for an address, independent
// of the request ledger.
func (m *MarketPlace) SetSellerStatus(user common.Address, status bool) (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "setSellerStatus", user, status)
}

// SetAdminStatus grants or revokes admin rights for an address, independent
// of the request ledger.
func (m *MarketPlace) SetAdminStatus(user common.Address, status bool) (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "setAdminStatus", user, status)
}

// ListProduct creates a new product listing (seller-only). Price is the
// contract's fixed-point integer, not a decimal amount.
func (m *MarketPlace) ListProduct(name, imageRef string, price *big.Int) (*types.Transaction, error) {
	return m.contract.Transact(m.transactOpts, "listProduct", name, imageRef, price)
}

// BuyProduct purchases a product. The attached value must equal the listed
// price exactly; the contract settles payment to the seller.
func (m *MarketPlace) BuyProduct(id *big.Int, price *big.Int) (*types.Transaction, error) {
	oldValue := m.transactOpts.Value
	m.transactOpts.Value = price
	tx, err := m.contract.Transact(m.transactOpts, "buyProduct", id)
	m.transactOpts.Value = oldValue
	return tx, err
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// UserInfo holds the on-chain user record.
type UserInfo struct {
	WalletAddress common.Address
	IsSeller      bool
	IsAdmin       bool
}

// Users reads the user record for an address. An unregistered address
// returns the zero record (walletAddress == 0x0).
func (m *MarketPlace) Users(addr common.Address) (*UserInfo, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "users", addr)
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		WalletAddress: out[0].(common.Address),
		IsSeller:      out[1].(bool),
		IsAdmin:       out[2].(bool),
	}, nil
}

// Owner returns the contract owner set at deployment.
func (m *MarketPlace) Owner() (common.Address, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// RequestInfo holds one entry of a role-request ledger.
type RequestInfo struct {
	ID        *big.Int
	Applicant common.Address
	Status    uint8
}

// GetSellerRequestCount returns the number of seller requests ever filed.
func (m *MarketPlace) GetSellerRequestCount() (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getSellerRequestCount")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetSellerRequest reads one seller request by its 1-based id.
func (m *MarketPlace) GetSellerRequest(id *big.Int) (*RequestInfo, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getSellerRequest", id)
	if err != nil {
		return nil, err
	}
	return &RequestInfo{
		ID:        out[0].(*big.Int),
		Applicant: out[1].(common.Address),
		Status:    out[2].(uint8),
	}, nil
}

// GetAdminRequestCount returns the number of admin requests ever filed.
func (m *MarketPlace) GetAdminRequestCount() (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getAdminRequestCount")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// AdminRequests reads one admin request by its 1-based id.
func (m *MarketPlace) AdminRequests(id *big.Int) (*RequestInfo, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "adminRequests", id)
	if err != nil {
		return nil, err
	}
	return &RequestInfo{
		ID:        out[0].(*big.Int),
		Applicant: out[1].(common.Address),
		Status:    out[2].(uint8),
	}, nil
}

// ProductInfo holds the on-chain data for a single product.
type ProductInfo struct {
	ID          *big.Int
	Name        string
	Price       *big.Int
	IpfsHash    string
	IsAvailable bool
}

// GetProductCount returns the number of products ever listed.
func (m *MarketPlace) GetProductCount() (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getProductCount")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Products reads one product by its 1-based id.
func (m *MarketPlace) Products(id *big.Int) (*ProductInfo, error) {
	return m.readProduct("products", id)
}

// GetProductDetails reads one product by its 1-based id. Same tuple as
// Products; the contract exposes both and older views call this one.
func (m *MarketPlace) GetProductDetails(id *big.Int) (*ProductInfo, error) {
	return m.readProduct("getProductDetails", id)
}

func (m *MarketPlace) readProduct(method string, id *big.Int) (*ProductInfo, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, method, id)
	if err != nil {
		return nil, err
	}
	return &ProductInfo{
		ID:          out[0].(*big.Int),
		Name:        out[1].(string),
		Price:       out[2].(*big.Int),
		IpfsHash:    out[3].(string),
		IsAvailable: out[4].(bool),
	}, nil
}

// TransactionInfo holds one entry of the on-chain transaction ledger.
type TransactionInfo struct {
	ID        *big.Int
	TxType    uint8
	ProductID *big.Int
	Buyer     common.Address
	Seller    common.Address
	Price     *big.Int
	Timestamp *big.Int
}

// GetTransactionCount returns the number of ledger entries.
func (m *MarketPlace) GetTransactionCount() (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getTransactionCount")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// GetTransactionDetails reads one ledger entry by its 1-based id.
func (m *MarketPlace) GetTransactionDetails(id *big.Int) (*TransactionInfo, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{}, &out, "getTransactionDetails", id)
	if err != nil {
		return nil, err
	}
	return &TransactionInfo{
		ID:        out[0].(*big.Int),
		TxType:    out[1].(uint8),
		ProductID: out[2].(*big.Int),
		Buyer:     out[3].(common.Address),
		Seller:    out[4].(common.Address),
		Price:     out[5].(*big.Int),
		Timestamp: out[6].(*big.Int),
	}, nil
}
