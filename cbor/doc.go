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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the encoding patterns
// needed for Cardano transaction data.
//
// Encoding is canonical (core deterministic map key ordering), which matters
// anywhere bytes feed a hash. Types that need their original bytes preserved
// for hashing embed DecodeStoreCbor and call SetCbor from UnmarshalCBOR;
// re-encoding decoded data is never byte-exact enough to hash.
//
// Constructor models the Plutus constructor/alternative encoding (tags
// 121-127 for alternatives 0-6, 1280-1400 for 7-127, tag 101 above that).
// The primitive helpers (EncodeUint, EncodeBytes, EncodeArrayHeader,
// EncodeMapHeader) emit canonical shortest-form headers for the few places
// where CBOR is assembled by hand, such as cost-model language views.
package cbor
