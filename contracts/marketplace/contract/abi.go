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

// Package contract contains the ABI for the deployed MarketPlace contract.
// The contract itself is external; this client only binds to it.
package contract

// MarketPlaceABI is the ABI of the MarketPlace contract.
const MarketPlaceABI = `[
	{
		"constant": true,
		"inputs": [{"name": "", "type": "address"}],
		"name": "users",
		"outputs": [
			{"name": "walletAddress", "type": "address"},
			{"name": "isSeller",      "type": "bool"},
			{"name": "isAdmin",       "type": "bool"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "owner",
		"outputs": [{"name": "", "type": "address"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [],
		"name": "registerUser",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [],
		"name": "requestSellerVerification",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [],
		"name": "requestAdminRole",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "getSellerRequestCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_id", "type": "uint256"}],
		"name": "getSellerRequest",
		"outputs": [
			{"name": "id",        "type": "uint256"},
			{"name": "applicant", "type": "address"},
			{"name": "status",    "type": "uint8"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "getAdminRequestCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "", "type": "uint256"}],
		"name": "adminRequests",
		"outputs": [
			{"name": "id",        "type": "uint256"},
			{"name": "applicant", "type": "address"},
			{"name": "status",    "type": "uint8"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_id",      "type": "uint256"},
			{"name": "_approve", "type": "bool"}
		],
		"name": "processSellerRequest",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_id",      "type": "uint256"},
			{"name": "_approve", "type": "bool"}
		],
		"name": "processAdminRequest",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_user",   "type": "address"},
			{"name": "_status", "type": "bool"}
		],
		"name": "setSellerStatus",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_user",   "type": "address"},
			{"name": "_status", "type": "bool"}
		],
		"name": "setAdminStatus",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "getProductCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "", "type": "uint256"}],
		"name": "products",
		"outputs": [
			{"name": "id",          "type": "uint256"},
			{"name": "name",        "type": "string"},
			{"name": "price",       "type": "uint256"},
			{"name": "ipfsHash",    "type": "string"},
			{"name": "isAvailable", "type": "bool"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_id", "type": "uint256"}],
		"name": "getProductDetails",
		"outputs": [
			{"name": "id",          "type": "uint256"},
			{"name": "name",        "type": "string"},
			{"name": "price",       "type": "uint256"},
			{"name": "ipfsHash",    "type": "string"},
			{"name": "isAvailable", "type": "bool"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_name",     "type": "string"},
			{"name": "_ipfsHash", "type": "string"},
			{"name": "_price",    "type": "uint256"}
		],
		"name": "listProduct",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "_id", "type": "uint256"}],
		"name": "buyProduct",
		"outputs": [],
		"payable": true,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "getTransactionCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_id", "type": "uint256"}],
		"name": "getTransactionDetails",
		"outputs": [
			{"name": "id",        "type": "uint256"},
			{"name": "txType",    "type": "uint8"},
			{"name": "productId", "type": "uint256"},
			{"name": "buyer",     "type": "address"},
			{"name": "seller",    "type": "address"},
			{"name": "price",     "type": "uint256"},
			{"name": "timestamp", "type": "uint256"}
		],
		"payable": false,
		"type": "function"
	}
]`
