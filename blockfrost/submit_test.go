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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTransaction(t *testing.T) {
	txCbor := []byte{0x84, 0xa3, 0x00, 0x81}
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tx/submit", r.URL.Path)
			assert.Equal(
				t,
				"application/cbor",
				r.Header.Get("Content-Type"),
			)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			// Submission body is raw CBOR, not hex
			assert.Equal(t, txCbor, body)
			w.Write(
				[]byte(`"aa00000000000000000000000000000000000000000000000000000000000000"`),
			)
		}),
	)
	defer srv.Close()
	client := NewClient(srv.URL, "testKey", nil)
	txHash, err := client.SubmitTransaction(context.Background(), txCbor)
	require.NoError(t, err)
	assert.Equal(
		t,
		"aa00000000000000000000000000000000000000000000000000000000000000",
		txHash,
	)
}

func TestSubmitTransactionRejected(t *testing.T) {
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write(
				[]byte(`{"status_code":400,"error":"Bad Request","message":"transaction read error"}`),
			)
		}),
	)
	defer srv.Close()
	client := NewClient(srv.URL, "testKey", nil)
	_, err := client.SubmitTransaction(
		context.Background(),
		[]byte{0x84},
	)
	require.Error(t, err)
	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, http.StatusBadRequest, submitErr.StatusCode)
	assert.Contains(t, submitErr.Error(), "transaction read error")
}
