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

package cbor

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// alternativeToTag converts a constructor/alternative number to its CBOR tag number.
// Returns the tag number and whether the fields must be wrapped as [alt_number, fields]
// (true for alternatives 128+)
func alternativeToTag(alt uint) (uint64, bool) {
	switch {
	case alt <= 6:
		return uint64(alt) + CborTagAlternative1Min, false
	case alt <= 127:
		return uint64(alt) - 7 + CborTagAlternative2Min, false
	default:
		return CborTagAlternative3, true
	}
}

// IsAlternativeTag returns true if the given CBOR tag number represents
// a constructor/alternative (tags 121-127, 1280-1400, or 101)
func IsAlternativeTag(tagNum uint64) bool {
	return (tagNum >= CborTagAlternative1Min && tagNum <= CborTagAlternative1Max) ||
		(tagNum >= CborTagAlternative2Min && tagNum <= CborTagAlternative2Max) ||
		tagNum == CborTagAlternative3
}

// Constructor represents a Plutus constructor/alternative value. Fields are kept
// as raw CBOR for deferred decoding
type Constructor struct {
	DecodeStoreCbor
	alternative uint
	fields      RawMessage
}

// NewConstructor creates a Constructor with the given alternative number and
// fields value. The fields value is encoded immediately; typically a []any
func NewConstructor(alternative uint, fields any) (Constructor, error) {
	if fields == nil {
		fields = []any{}
	}
	fieldsCbor, err := Encode(fields)
	if err != nil {
		return Constructor{}, err
	}
	return Constructor{
		alternative: alternative,
		fields:      RawMessage(fieldsCbor),
	}, nil
}

// Alternative returns the constructor/alternative number
func (c Constructor) Alternative() uint {
	return c.alternative
}

// FieldsCbor returns the raw CBOR bytes of the constructor fields
func (c Constructor) FieldsCbor() RawMessage {
	return c.fields
}

// DecodeFields decodes the constructor fields into the destination.
// The destination should match the CBOR structure of the fields
// (e.g. a slice for an array, a struct with StructAsArray for a fixed-length array)
func (c Constructor) DecodeFields(dest any) error {
	_, err := Decode(c.fields, dest)
	return err
}

// Fields parses the constructor fields through Value for proper handling of
// CBOR types that need a special Go representation and returns them as []any
func (c Constructor) Fields() ([]any, error) {
	var tmpValue Value
	if _, err := Decode(c.fields, &tmpValue); err != nil {
		return nil, err
	}
	fields, ok := tmpValue.Value.([]any)
	if !ok {
		return nil, fmt.Errorf(
			"constructor fields are not an array, got %T",
			tmpValue.Value,
		)
	}
	return fields, nil
}

func (c *Constructor) UnmarshalCBOR(data []byte) error {
	tmpTag := RawTag{}
	if _, err := Decode(data, &tmpTag); err != nil {
		return err
	}
	switch {
	case tmpTag.Number >= CborTagAlternative1Min && tmpTag.Number <= CborTagAlternative1Max:
		// Alternatives 0-6 (tags 121-127)
		c.alternative = uint(tmpTag.Number - CborTagAlternative1Min)
		c.fields = RawMessage(tmpTag.Content)
	case tmpTag.Number >= CborTagAlternative2Min && tmpTag.Number <= CborTagAlternative2Max:
		// Alternatives 7-127 (tags 1280-1400)
		c.alternative = uint(tmpTag.Number - CborTagAlternative2Min + 7)
		c.fields = RawMessage(tmpTag.Content)
	case tmpTag.Number == CborTagAlternative3:
		// Alternatives 128+ (tag 101): content is [alt_number, fields]
		var outer []RawMessage
		if _, err := Decode(tmpTag.Content, &outer); err != nil {
			return fmt.Errorf("decode alternative content: %w", err)
		}
		if len(outer) != 2 {
			return fmt.Errorf(
				"expected 2 elements for alternative 128+, got %d",
				len(outer),
			)
		}
		var altNum uint64
		if _, err := Decode(outer[0], &altNum); err != nil {
			return fmt.Errorf("decode alternative number: %w", err)
		}
		c.alternative = uint(altNum)
		c.fields = outer[1]
	default:
		return fmt.Errorf("unsupported constructor tag: %d", tmpTag.Number)
	}
	c.SetCbor(data)
	return nil
}

// MarshalCBOR encodes the constructor as CBOR. If original bytes are available
// (from a previous UnmarshalCBOR), they are returned for round-trip fidelity
func (c Constructor) MarshalCBOR() ([]byte, error) {
	if stored := c.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	fields := c.fields
	if len(fields) == 0 {
		// Empty fields are an empty array
		fields = RawMessage{0x80}
	}
	tagNum, wrap := alternativeToTag(c.alternative)
	if wrap {
		// Alternative 128+: content is [alt_number, fields]
		altBytes := EncodeUint(uint64(c.alternative))
		content := make([]byte, 0, 1+len(altBytes)+len(fields))
		content = append(content, 0x82)
		content = append(content, altBytes...)
		content = append(content, fields...)
		tmpTag := RawTag{Number: tagNum, Content: RawMessage(content)}
		return Encode(&tmpTag)
	}
	tmpTag := RawTag{Number: tagNum, Content: fields}
	return Encode(&tmpTag)
}

// MarshalJSON produces Cardano-style AST JSON:
// {"constructor":N,"fields":[...]}
func (c Constructor) MarshalJSON() ([]byte, error) {
	fields, err := c.Fields()
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `{"constructor":%d,"fields":[`, c.alternative)
	for idx, val := range fields {
		tmpVal, err := generateAstJson(val)
		if err != nil {
			return nil, err
		}
		sb.Write(tmpVal)
		if idx != len(fields)-1 {
			sb.WriteString(`,`)
		}
	}
	sb.WriteString(`]}`)
	return []byte(sb.String()), nil
}

func generateAstJson(obj any) ([]byte, error) {
	tmpJsonObj := map[string]any{}
	switch v := obj.(type) {
	case ByteString:
		tmpJsonObj["bytes"] = hex.EncodeToString(v.Bytes())
	case []byte:
		tmpJsonObj["bytes"] = hex.EncodeToString(v)
	case uint64, int64, int, uint, *big.Int:
		tmpJsonObj["int"] = v
	case string:
		tmpJsonObj["string"] = v
	case []any:
		tmpList := []json.RawMessage{}
		for _, item := range v {
			tmpItem, err := generateAstJson(item)
			if err != nil {
				return nil, err
			}
			tmpList = append(tmpList, tmpItem)
		}
		tmpJsonObj["list"] = tmpList
	case Constructor:
		return json.Marshal(&v)
	default:
		return nil, fmt.Errorf("unsupported value type for AST JSON: %T", obj)
	}
	return json.Marshal(&tmpJsonObj)
}
