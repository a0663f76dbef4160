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
	"fmt"
	"sort"
	"sync"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	_log "github.com/hive-tools/hivekit/log"
)

// Caller is the capability consumed by the readers, the ops package, and the
// bot: one JSON RPC call against "the Hive API", however many nodes happen to
// back it. Client, ProxyClient and ExtendedClient all implement it, as do
// test fakes.
type Caller interface {
	Call(ctx context.Context, method string, params, result interface{}) error
}

// Client makes JSON RPC requests against a fixed set of Hive API nodes with
// sequential failover. Client embeds a jsonrpc2.Client, and thus also an
// http.Client, shared by all nodes. Use jsonrpc2.Client's BasicAuth settings
// to set up BasicAuth and http.Client's transport settings to configure TLS.
//
// The node set is immutable after construction. Health and latency tracked
// per node are owned exclusively by this Client instance; independent Clients
// never share state.
type Client struct {
	jrpc.Client

	network      Network
	nodes        []*Node
	probeTimeout time.Duration

	mu       sync.Mutex
	tapos    *TaposEntry
	taposTTL time.Duration

	log _log.Log
}

// Defaults used by NewClient when no option overrides them.
const (
	DefaultTimeout      = 15 * time.Second
	DefaultProbeTimeout = 5 * time.Second
	DefaultTaposTTL     = 30 * time.Second
)

// Option configures a Client during construction.
type Option func(*Client)

// WithNetwork selects the Hive network. The network's default nodes are used
// unless WithNodes overrides them.
func WithNetwork(network Network) Option {
	return func(c *Client) {
		c.network = network
	}
}

// WithNodes replaces the node endpoint list. The list becomes immutable once
// NewClient returns.
func WithNodes(urls ...string) Option {
	return func(c *Client) {
		c.nodes = make([]*Node, len(urls))
		for i, url := range urls {
			c.nodes[i] = &Node{URL: url, Healthy: true}
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.Timeout = timeout
	}
}

// WithProbeTimeout bounds each individual node probe issued by HealthyNodes
// and NodeMetrics.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.probeTimeout = timeout
	}
}

// WithTaposTTL sets the freshness window of the TaPoS cache.
func WithTaposTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.taposTTL = ttl
	}
}

// NewClient returns a Client for the Hive mainnet with its default public
// nodes, unless options say otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		network:      Mainnet(),
		probeTimeout: DefaultProbeTimeout,
		taposTTL:     DefaultTaposTTL,
		log:          _log.New("hive"),
	}
	c.Timeout = DefaultTimeout
	for _, opt := range opts {
		opt(c)
	}
	if len(c.nodes) == 0 {
		c.nodes = make([]*Node, len(c.network.Nodes))
		for i, url := range c.network.Nodes {
			c.nodes[i] = &Node{URL: url, Healthy: true}
		}
	}
	return c
}

// Network returns the network the Client was constructed for.
func (c *Client) Network() Network {
	return c.network
}

// ChainID returns the chain ID used for transaction signing digests.
func (c *Client) ChainID() Bytes32 {
	return c.network.ChainID
}

// Nodes returns a snapshot of the node descriptors. The returned copies do
// not track later health updates.
func (c *Client) Nodes() []Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes := make([]Node, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = *n
	}
	return nodes
}

// Call makes a JSON RPC request, walking the configured nodes in
// healthy-lowest-latency-first order until one answers. A node that fails at
// the transport level is marked unhealthy and the next node is tried; a node
// that answers with a JSON RPC error object stops the walk and Call returns
// an RPCError. Call returns a NetworkError only after every node has been
// tried and failed.
func (c *Client) Call(ctx context.Context,
	method string, params, result interface{}) error {

	var errs []error
	for _, n := range c.callOrder() {
		start := time.Now()
		err := c.Client.Request(ctx, n.URL, method, params, result)
		if err == nil {
			c.markNode(n, true, time.Since(start))
			return nil
		}
		if rpcErr, ok := err.(jrpc.Error); ok {
			// The node answered; it is healthy even though the
			// method failed.
			c.markNode(n, true, time.Since(start))
			return RPCError{Method: method, Err: rpcErr}
		}
		c.log.Debugf("node %v failed: %v", n.URL, err)
		c.markNode(n, false, 0)
		errs = append(errs, fmt.Errorf("%s: %w", n.URL, err))
		if ctx.Err() != nil {
			break
		}
	}
	return NetworkError{Method: method, Errs: errs}
}

// callOrder snapshots the nodes sorted healthy-first, by ascending latency
// within each group. Unhealthy nodes stay in the order as a last resort so
// that a node that recovered since its last probe can still serve.
func (c *Client) callOrder() []*Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	order := make([]*Node, len(c.nodes))
	copy(order, c.nodes)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Healthy != order[j].Healthy {
			return order[i].Healthy
		}
		return order[i].Latency < order[j].Latency
	})
	return order
}

func (c *Client) markNode(n *Node, healthy bool, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n.Healthy = healthy
	if healthy {
		n.Latency = latency
	}
	n.LastProbe = time.Now()
}
