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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// newTestWallet creates a connected wallet session over a throwaway
// keystore with one account.
func newTestWallet(t *testing.T) (*WalletSession, common.Address) {
	t.Helper()
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acct, err := ks.NewAccount("test")
	require.NoError(t, err)

	w := NewWalletSession(ks, big.NewInt(1337))
	addr, err := w.Connect("test")
	require.NoError(t, err)
	require.Equal(t, acct.Address, addr)
	return w, addr
}

// addTestAccount adds a second account to an existing wallet's keystore.
func addTestAccount(t *testing.T, w *WalletSession) common.Address {
	t.Helper()
	acct, err := w.ks.NewAccount("test")
	require.NoError(t, err)
	return acct.Address
}
