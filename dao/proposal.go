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

// Package dao implements a DAO voting contract whose proposals live as
// script UTxOs with inline constructor datums holding the vote tallies
package dao

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/blinklabs-io/plutustx/cbor"
	"github.com/blinklabs-io/plutustx/ledger"

	"github.com/blinklabs-io/plutigo/data"
)

// Proposal is the on-chain state of one DAO proposal. Its datum is
// constructor 0 with six fields: policy ID, title, description, and the
// three vote tallies
type Proposal struct {
	PolicyId    []byte
	Title       string
	Description string
	Yes         uint64
	No          uint64
	Appeal      uint64
}

// Datum encodes the proposal as its on-chain inline datum
func (p Proposal) Datum() (ledger.Datum, error) {
	return ledger.NewDatum(
		data.NewConstr(
			0,
			data.NewByteString(p.PolicyId),
			data.NewByteString([]byte(p.Title)),
			data.NewByteString([]byte(p.Description)),
			data.NewInteger(new(big.Int).SetUint64(p.Yes)),
			data.NewInteger(new(big.Int).SetUint64(p.No)),
			data.NewInteger(new(big.Int).SetUint64(p.Appeal)),
		),
	)
}

// DecodeProposal decodes a proposal datum, rejecting anything that is not
// constructor 0 with the expected six fields and valid UTF-8 text
func DecodeProposal(datumCbor []byte) (*Proposal, error) {
	wrapErr := func(err error) error {
		return &ledger.DatumDecodeError{
			Expected: "proposal",
			Err:      err,
		}
	}
	var constr cbor.Constructor
	if _, err := cbor.Decode(datumCbor, &constr); err != nil {
		return nil, wrapErr(err)
	}
	if constr.Alternative() != 0 {
		return nil, wrapErr(
			fmt.Errorf(
				"unexpected constructor alternative %d",
				constr.Alternative(),
			),
		)
	}
	var tmpFields struct {
		cbor.StructAsArray
		PolicyId    []byte
		Title       []byte
		Description []byte
		Yes         uint64
		No          uint64
		Appeal      uint64
	}
	if err := constr.DecodeFields(&tmpFields); err != nil {
		return nil, wrapErr(err)
	}
	if !utf8.Valid(tmpFields.Title) || !utf8.Valid(tmpFields.Description) {
		return nil, wrapErr(fmt.Errorf("text fields are not valid UTF-8"))
	}
	return &Proposal{
		PolicyId:    tmpFields.PolicyId,
		Title:       string(tmpFields.Title),
		Description: string(tmpFields.Description),
		Yes:         tmpFields.Yes,
		No:          tmpFields.No,
		Appeal:      tmpFields.Appeal,
	}, nil
}

// VoteChoice selects which tally a vote increments
type VoteChoice uint

const (
	VoteYes    VoteChoice = 0
	VoteNo     VoteChoice = 1
	VoteAppeal VoteChoice = 2
)

func (c VoteChoice) String() string {
	switch c {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	case VoteAppeal:
		return "appeal"
	}
	return "unknown"
}

// ParseVoteChoice parses a user-supplied vote choice name
func ParseVoteChoice(name string) (VoteChoice, error) {
	switch name {
	case "yes":
		return VoteYes, nil
	case "no":
		return VoteNo, nil
	case "appeal":
		return VoteAppeal, nil
	}
	return 0, fmt.Errorf("unknown vote choice: %q", name)
}

// Redeemer encodes the vote redeemer: constructor 0 wrapping an empty
// constructor whose alternative selects the choice
func (c VoteChoice) Redeemer() (ledger.Datum, error) {
	return ledger.NewDatum(
		data.NewConstr(0, data.NewConstr(uint(c))),
	)
}

// Applied returns the proposal with the chosen tally incremented
func (p Proposal) Applied(choice VoteChoice) Proposal {
	ret := p
	switch choice {
	case VoteYes:
		ret.Yes++
	case VoteNo:
		ret.No++
	case VoteAppeal:
		ret.Appeal++
	}
	return ret
}
