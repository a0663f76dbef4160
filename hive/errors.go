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
	"errors"
	"fmt"
	"strings"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
)

// ValidationError reports malformed input, such as a bad username or tag. It
// is always returned before any network I/O is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkError is returned by Call only after every configured node has been
// tried and failed. Errs holds one error per failed node, in the order the
// nodes were attempted.
type NetworkError struct {
	Method string
	Errs   []error
}

func (e NetworkError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%q: all nodes failed: %s",
		e.Method, strings.Join(msgs, "; "))
}

// Unwrap exposes the per-node errors for errors.Is/As inspection.
func (e NetworkError) Unwrap() []error {
	return e.Errs
}

// RPCError wraps the JSON RPC 2.0 error object returned by a node. A node
// that answers with an error object has answered: the failure is semantic,
// not transient, so Call does not retry it against other nodes.
type RPCError struct {
	Method string
	Err    jrpc.Error
}

func (e RPCError) Error() string {
	return fmt.Sprintf("%q: %v", e.Method, e.Err)
}

func (e RPCError) Unwrap() error {
	return e.Err
}

// IsRPCError reports whether err is, or wraps, an RPCError.
func IsRPCError(err error) bool {
	var rpcErr RPCError
	return errors.As(err, &rpcErr)
}
