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

// Package pinning uploads listing images to a content-pinning service and
// resolves stored references to fetchable gateway URLs. The shipped client
// targets Pinata's pinFileToIPFS endpoint.
package pinning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is Pinata's file-pinning API.
	DefaultEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"

	// DefaultGateway is a public IPFS gateway prefix for resolved URLs.
	DefaultGateway = "https://gateway.ipfs.io/ipfs/"
)

// ErrNotConfigured is returned when the client has no API credentials.
var ErrNotConfigured = errors.New("pinning: pinata API credentials not configured")

// Config holds the Pinata client settings. Endpoint and Gateway default
// when empty.
type Config struct {
	APIKey    string
	SecretKey string
	Endpoint  string
	Gateway   string
}

// Client is a Pinata pinning client.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a pinning client. Credentials are validated lazily on
// the first upload so a read-only deployment can run without them.
func NewClient(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Gateway == "" {
		config.Gateway = DefaultGateway
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 2 * time.Minute},
	}
}

// pinResponse is the subset of Pinata's response the client consumes.
type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// Upload pins a file and returns its content hash (CID).
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	if c.config.APIKey == "" || c.config.SecretKey == "" {
		return "", ErrNotConfigured
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("pinning: reading upload: %v", err)
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"name":      filename,
		"keyvalues": map[string]string{"application": "blockchain-marketplace"},
	})
	if err := writer.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", err
	}
	if err := writer.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("pinata_api_key", c.config.APIKey)
	req.Header.Set("pinata_secret_api_key", c.config.SecretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinning: upload request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("pinning: pinata returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var pinned pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinned); err != nil {
		return "", fmt.Errorf("pinning: decoding pinata response: %v", err)
	}
	if pinned.IpfsHash == "" {
		return "", errors.New("pinning: pinata response carried no hash")
	}
	return pinned.IpfsHash, nil
}

// GatewayURL resolves a content hash or ipfs:// URI to an HTTP URL.
// Empty references resolve to the empty string.
func (c *Client) GatewayURL(ref string) string {
	if ref == "" {
		return ""
	}
	ref = strings.TrimPrefix(ref, "ipfs://")
	return c.config.Gateway + ref
}
