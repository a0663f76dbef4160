// MIT License
//
// Copyright 2024 Hive Tools Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package hive

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"time"
)

// MethodBroadcastTransaction submits a signed transaction and waits for it to
// be included in a block.
const MethodBroadcastTransaction = "condenser_api.broadcast_transaction_synchronous"

// DefaultExpiry is how far past the referenced head block a transaction stays
// valid. The chain caps expirations at one hour.
const DefaultExpiry = 10 * time.Minute

// Operation is a single blockchain operation carried by a Transaction. The
// JSON form is the ["name", {...}] pair condenser_api expects; the binary
// form is what gets signed.
type Operation interface {
	// OpName returns the operation's wire name, e.g. "vote".
	OpName() string
	// OpID returns the operation's numeric serializer ID.
	OpID() uint64
	// MarshalBinary appends the operation's body, without the ID, to buf.
	MarshalBinary(buf *bytes.Buffer)
}

// VoteOperation is a vote on a post or comment. Weight is in basis points:
// 10000 is a full-strength upvote.
type VoteOperation struct {
	Voter    string `json:"voter"`
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Weight   int16  `json:"weight"`
}

func (VoteOperation) OpName() string { return "vote" }
func (VoteOperation) OpID() uint64   { return 0 }

// MarshalBinary appends the vote body in the chain's serializer layout.
func (op VoteOperation) MarshalBinary(buf *bytes.Buffer) {
	appendString(buf, op.Voter)
	appendString(buf, op.Author)
	appendString(buf, op.Permlink)
	var weight [2]byte
	binary.LittleEndian.PutUint16(weight[:], uint16(op.Weight))
	buf.Write(weight[:])
}

// MarshalJSON renders the ["vote", {...}] pair.
func (op VoteOperation) MarshalJSON() ([]byte, error) {
	type body VoteOperation
	return json.Marshal([]interface{}{op.OpName(), body(op)})
}

// CommentOperation creates or edits a post or comment. Root posts have an
// empty ParentAuthor and carry their category as ParentPermlink.
type CommentOperation struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

func (CommentOperation) OpName() string { return "comment" }
func (CommentOperation) OpID() uint64   { return 1 }

// MarshalBinary appends the comment body in the chain's serializer layout.
func (op CommentOperation) MarshalBinary(buf *bytes.Buffer) {
	appendString(buf, op.ParentAuthor)
	appendString(buf, op.ParentPermlink)
	appendString(buf, op.Author)
	appendString(buf, op.Permlink)
	appendString(buf, op.Title)
	appendString(buf, op.Body)
	appendString(buf, op.JSONMetadata)
}

// MarshalJSON renders the ["comment", {...}] pair.
func (op CommentOperation) MarshalJSON() ([]byte, error) {
	type body CommentOperation
	return json.Marshal([]interface{}{op.OpName(), body(op)})
}

// Transaction is an unsigned or signed Hive transaction. The TaPoS reference
// fields anchor it to a recent block; Expiration is derived from the chain's
// head block time rather than the local clock.
type Transaction struct {
	RefBlockNum    uint16            `json:"ref_block_num"`
	RefBlockPrefix uint32            `json:"ref_block_prefix"`
	Expiration     Time              `json:"expiration"`
	Operations     []Operation       `json:"operations"`
	Extensions     []json.RawMessage `json:"extensions"`
	Signatures     []string          `json:"signatures"`
}

// NewTransaction builds an unsigned transaction anchored to the given TaPoS
// entry, expiring DefaultExpiry past the entry's chain time.
func NewTransaction(tapos TaposEntry, ops ...Operation) *Transaction {
	return &Transaction{
		RefBlockNum:    tapos.RefBlockNum,
		RefBlockPrefix: tapos.RefBlockPrefix,
		Expiration:     NewTime(tapos.ChainTime.Add(DefaultExpiry)),
		Operations:     ops,
		Extensions:     []json.RawMessage{},
		Signatures:     []string{},
	}
}

// MarshalBinary serializes the transaction, without signatures, in the
// chain's wire layout. This is the byte string that gets signed after the
// chain ID is prepended.
func (tx *Transaction) MarshalBinary() []byte {
	var buf bytes.Buffer
	var fixed [4]byte

	binary.LittleEndian.PutUint16(fixed[:2], tx.RefBlockNum)
	buf.Write(fixed[:2])
	binary.LittleEndian.PutUint32(fixed[:4], tx.RefBlockPrefix)
	buf.Write(fixed[:4])
	binary.LittleEndian.PutUint32(fixed[:4],
		uint32(tx.Expiration.UTC().Unix()))
	buf.Write(fixed[:4])

	appendUvarint(&buf, uint64(len(tx.Operations)))
	for _, op := range tx.Operations {
		appendUvarint(&buf, op.OpID())
		op.MarshalBinary(&buf)
	}
	appendUvarint(&buf, uint64(len(tx.Extensions)))

	return buf.Bytes()
}

// BroadcastResult is the node's answer to a synchronous broadcast.
type BroadcastResult struct {
	ID       string `json:"id"`
	BlockNum uint32 `json:"block_num"`
	TrxNum   uint32 `json:"trx_num"`
	Expired  bool   `json:"expired"`
}

// Broadcast submits the signed transaction and waits for inclusion.
func (tx *Transaction) Broadcast(ctx context.Context,
	c Caller) (*BroadcastResult, error) {

	var result BroadcastResult
	params := []interface{}{tx}
	if err := c.Call(ctx, MethodBroadcastTransaction, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// appendUvarint appends n in the serializer's LEB128 varint form.
func appendUvarint(buf *bytes.Buffer, n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], n)])
}

// appendString appends a varint length prefix followed by the raw bytes.
func appendString(buf *bytes.Buffer, s string) {
	appendUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}
