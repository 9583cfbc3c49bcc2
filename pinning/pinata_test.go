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

package pinning

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadPinsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("pinata_api_key"))
		assert.Equal(t, "test-secret", r.Header.Get("pinata_secret_api_key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lamp.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))

		assert.Contains(t, r.FormValue("pinataMetadata"), "blockchain-marketplace")
		assert.Contains(t, r.FormValue("pinataOptions"), `"cidVersion":0`)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"IpfsHash":"QmTestHash123","PinSize":16}`)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "test-key", SecretKey: "test-secret", Endpoint: srv.URL})

	cid, err := client.Upload(context.Background(), "lamp.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "QmTestHash123", cid)
}

func TestUploadWithoutCredentials(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Upload(context.Background(), "lamp.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUploadSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "bad", SecretKey: "bad", Endpoint: srv.URL})
	_, err := client.Upload(context.Background(), "lamp.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestUploadRejectsEmptyHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", SecretKey: "s", Endpoint: srv.URL})
	_, err := client.Upload(context.Background(), "lamp.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hash")
}

func TestGatewayURL(t *testing.T) {
	client := NewClient(Config{})

	assert.Equal(t, "https://gateway.ipfs.io/ipfs/QmHash", client.GatewayURL("QmHash"))
	assert.Equal(t, "https://gateway.ipfs.io/ipfs/QmHash", client.GatewayURL("ipfs://QmHash"))
	assert.Equal(t, "", client.GatewayURL(""))

	custom := NewClient(Config{Gateway: "https://my.gateway/ipfs/"})
	assert.Equal(t, "https://my.gateway/ipfs/QmHash", custom.GatewayURL("QmHash"))
}
