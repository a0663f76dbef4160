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
	"sync"
	"time"
)

// Node describes a single configured API endpoint. Health, latency and block
// height are updated as a side effect of Call and of the probe methods.
type Node struct {
	URL         string
	Healthy     bool
	Latency     time.Duration
	BlockHeight uint32
	LastProbe   time.Time
}

// NodeMetric is one node's probe outcome as reported by NodeMetrics. Drift is
// how many blocks the node's reported head lags the highest head seen across
// all probed nodes in the same pass.
type NodeMetric struct {
	Node
	Drift uint32
}

// DriftThreshold is the block height lag beyond which a node is considered
// to be lagging the network. Drift is surfaced by NodeMetrics for
// observability only; it never excludes a node from failover.
const DriftThreshold = 3

// Lagging reports whether the node's head is more than DriftThreshold blocks
// behind the best head seen.
func (m NodeMetric) Lagging() bool {
	return m.Drift > DriftThreshold
}

// HealthyNodes probes every configured node concurrently, each probe bounded
// by the probe timeout, and returns the nodes that answered. Health and
// latency of all node descriptors are updated as a side effect. Probe
// failures are absorbed into the descriptors and never returned as errors.
func (c *Client) HealthyNodes(ctx context.Context) []Node {
	c.probeAll(ctx)
	var healthy []Node
	for _, n := range c.Nodes() {
		if n.Healthy {
			healthy = append(healthy, n)
		}
	}
	return healthy
}

// NodeMetrics probes every configured node like HealthyNodes, but also
// records each node's reported head block number, so that a node lagging the
// network can be spotted. Lag is reported, not acted on: Call keeps its
// healthy-lowest-latency-first order regardless of drift.
func (c *Client) NodeMetrics(ctx context.Context) []NodeMetric {
	c.probeAll(ctx)
	nodes := c.Nodes()
	var best uint32
	for _, n := range nodes {
		if n.Healthy && n.BlockHeight > best {
			best = n.BlockHeight
		}
	}
	metrics := make([]NodeMetric, len(nodes))
	for i, n := range nodes {
		metrics[i] = NodeMetric{Node: n}
		if n.Healthy && best > n.BlockHeight {
			metrics[i].Drift = best - n.BlockHeight
		}
	}
	return metrics
}

// probeAll fans a get_dynamic_global_properties probe out to every node and
// joins before returning. One unresponsive node cannot stall the pass beyond
// the per-probe timeout.
func (c *Client) probeAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, n := range c.nodes {
		wg.Add(1)
		go func(n *Node) {
			defer wg.Done()
			c.probe(ctx, n)
		}(n)
	}
	wg.Wait()
}

func (c *Client) probe(ctx context.Context, n *Node) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	var props DynamicGlobalProperties
	start := time.Now()
	err := c.Client.Request(ctx, n.URL, MethodDynamicGlobalProperties,
		[]interface{}{}, &props)
	latency := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	n.LastProbe = time.Now()
	if err != nil {
		c.log.Debugf("probe %v failed: %v", n.URL, err)
		n.Healthy = false
		return
	}
	n.Healthy = true
	n.Latency = latency
	n.BlockHeight = props.HeadBlockNumber
}
