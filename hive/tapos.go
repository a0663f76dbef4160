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
	"context"
	"encoding/binary"
	"fmt"
	"time"
)

// MethodDynamicGlobalProperties is the condenser_api method that reports the
// chain head, from which TaPoS reference values are derived.
const MethodDynamicGlobalProperties = "condenser_api.get_dynamic_global_properties"

// DynamicGlobalProperties is the subset of the
// get_dynamic_global_properties result that transaction construction and
// node probing care about.
type DynamicGlobalProperties struct {
	HeadBlockNumber uint32 `json:"head_block_number"`
	HeadBlockID     Bytes  `json:"head_block_id"`
	Time            Time   `json:"time"`
	CurrentWitness  string `json:"current_witness"`
}

// TaposEntry anchors a transaction to a recent block: RefBlockNum and
// RefBlockPrefix are embedded in every transaction so that it cannot replay
// against a different fork. ChainTime is the head block's timestamp, used to
// derive expirations without trusting the local clock.
type TaposEntry struct {
	HeadBlockID     Bytes
	HeadBlockNumber uint32
	RefBlockNum     uint16
	RefBlockPrefix  uint32
	ChainTime       time.Time
	FetchedAt       time.Time
}

// Get populates props using c.
func (props *DynamicGlobalProperties) Get(ctx context.Context, c Caller) error {
	return c.Call(ctx, MethodDynamicGlobalProperties,
		[]interface{}{}, props)
}

// TaposEntry derives the TaPoS reference values from the head block.
func (props DynamicGlobalProperties) TaposEntry() (TaposEntry, error) {
	if len(props.HeadBlockID) < 8 {
		return TaposEntry{}, fmt.Errorf(
			"head_block_id too short: %v bytes", len(props.HeadBlockID))
	}
	return TaposEntry{
		HeadBlockID:     props.HeadBlockID,
		HeadBlockNumber: props.HeadBlockNumber,
		RefBlockNum:     uint16(props.HeadBlockNumber & 0xffff),
		RefBlockPrefix:  binary.LittleEndian.Uint32(props.HeadBlockID[4:8]),
		ChainTime:       props.Time.Time,
		FetchedAt:       time.Now(),
	}, nil
}

// TaposCache returns the cached TaPoS entry if it is younger than the
// freshness window, and otherwise makes exactly one
// get_dynamic_global_properties call to rebuild it. A caller never sees an
// entry older than the window.
func (c *Client) TaposCache(ctx context.Context) (TaposEntry, error) {
	c.mu.Lock()
	if c.tapos != nil && time.Since(c.tapos.FetchedAt) < c.taposTTL {
		entry := *c.tapos
		c.mu.Unlock()
		return entry, nil
	}
	c.mu.Unlock()

	var props DynamicGlobalProperties
	if err := props.Get(ctx, c); err != nil {
		return TaposEntry{}, err
	}
	entry, err := props.TaposEntry()
	if err != nil {
		return TaposEntry{}, err
	}

	c.mu.Lock()
	c.tapos = &entry
	c.mu.Unlock()
	return entry, nil
}
