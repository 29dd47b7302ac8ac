// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blockfrost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	MainnetBaseUrl = "https://cardano-mainnet.blockfrost.io/api/v0"
	PreprodBaseUrl = "https://cardano-preprod.blockfrost.io/api/v0"
	PreviewBaseUrl = "https://cardano-preview.blockfrost.io/api/v0"

	defaultTimeout  = 30 * time.Second
	projectIdHeader = "project_id"
)

// Transient server failures are retried on a short fixed schedule. Client
// errors are never retried: a 4xx response will not improve and repeating a
// rejected submission or evaluation only burns rate limit
var retryDelays = []time.Duration{
	250 * time.Millisecond,
	750 * time.Millisecond,
	2000 * time.Millisecond,
}

func checkRetry(
	ctx context.Context,
	resp *http.Response,
	err error,
) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

func fixedScheduleBackoff(
	_ time.Duration,
	_ time.Duration,
	attemptNum int,
	_ *http.Response,
) time.Duration {
	if attemptNum >= len(retryDelays) {
		attemptNum = len(retryDelays) - 1
	}
	return retryDelays[attemptNum]
}

// Client is a Blockfrost API client scoped to a single project
type Client struct {
	baseUrl   string
	projectId string
	logger    *slog.Logger
	client    *retryablehttp.Client
}

func NewClient(baseUrl string, projectId string, logger *slog.Logger) *Client {
	if logger == nil {
		// Default logger throws away everything
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	client := &retryablehttp.Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		RetryMax:   len(retryDelays),
		Backoff:    fixedScheduleBackoff,
		CheckRetry: checkRetry,
	}
	return &Client{
		baseUrl:   strings.TrimSuffix(baseUrl, "/"),
		projectId: projectId,
		logger:    logger.With("component", "blockfrost"),
		client:    client,
	}
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	contentType string,
	body []byte,
) ([]byte, error) {
	url := c.baseUrl + path
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		method,
		url,
		body,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set(projectIdHeader, c.projectId)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.logger.Debug(
		"sending request",
		"method", method,
		"path", path,
	)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(path, resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	respBody, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
