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

import "context"

// RequestInterceptor may rewrite the method and params of a call before it is
// issued.
type RequestInterceptor func(method string, params interface{}) (string, interface{})

// ResponseInterceptor observes or rewrites the outcome of a call. The error
// it returns replaces the call's error.
type ResponseInterceptor func(method string, result interface{}, err error) error

// ProxyClient layers request/response interceptors around an inner Caller.
// The inner Caller is never mutated; proxies compose, so a ProxyClient can
// wrap another ProxyClient or an ExtendedClient.
type ProxyClient struct {
	inner Caller
	req   RequestInterceptor
	res   ResponseInterceptor
}

// WithProxy wraps c with the given interceptors. Either interceptor may be
// nil.
func WithProxy(c Caller, req RequestInterceptor, res ResponseInterceptor) *ProxyClient {
	return &ProxyClient{inner: c, req: req, res: res}
}

// Call runs the request interceptor, delegates to the inner Caller, and runs
// the response interceptor on the way back out.
func (p *ProxyClient) Call(ctx context.Context,
	method string, params, result interface{}) error {

	if p.req != nil {
		method, params = p.req(method, params)
	}
	err := p.inner.Call(ctx, method, params, result)
	if p.res != nil {
		err = p.res(method, result, err)
	}
	return err
}

// ExtendedClient layers named capabilities over an inner Caller without
// mutating it. Capabilities are arbitrary values: extra configuration,
// helper funcs, anything a higher layer wants to travel with the client.
type ExtendedClient struct {
	Caller
	caps map[string]interface{}
}

// Extend returns a new ExtendedClient carrying the given capabilities on top
// of c. When c is itself an ExtendedClient the capability sets are merged,
// with the new set winning on name collisions; c is left untouched either
// way.
func Extend(c Caller, caps map[string]interface{}) *ExtendedClient {
	merged := make(map[string]interface{}, len(caps))
	if inner, ok := c.(*ExtendedClient); ok {
		for name, cap := range inner.caps {
			merged[name] = cap
		}
	}
	for name, cap := range caps {
		merged[name] = cap
	}
	return &ExtendedClient{Caller: c, caps: merged}
}

// Capability looks up a named capability.
func (e *ExtendedClient) Capability(name string) (interface{}, bool) {
	cap, ok := e.caps[name]
	return cap, ok
}
