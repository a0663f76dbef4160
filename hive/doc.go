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

// Package hive provides data types corresponding to some of the Hive
// blockchain's data structures, as well as a failover JSON RPC 2.0 client for
// querying them from the public condenser_api exposed by Hive API nodes.
//
// The Client holds a fixed set of API node endpoints. Call selects nodes in
// healthy-lowest-latency-first order and walks them sequentially until one
// answers, so a single healthy node among the configured set is enough for a
// call to succeed. A node answering with a JSON RPC error object stops the
// walk immediately: that error is semantic, not transient, and is returned as
// an RPCError.
//
// The Account, Post and DynamicGlobalProperties types shape the condenser_api
// responses. Readers return nil, not an error, for well-formed queries about
// things that do not exist on chain.
//
// The Bytes and Bytes32 types are used by other types when JSON marshaling
// and unmarshaling to and from hex encoded data is required. Bytes32 is used
// for chain IDs, Bytes for block IDs.
//
// Transaction and the Operation types implement Hive's binary wire
// serialization, which is what gets signed. Signing itself lives in the
// hivecrypto package.
package hive
