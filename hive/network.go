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

// Network identifies a Hive network by its chain ID and carries the default
// public API nodes for it. The chain ID is prepended to the serialized
// transaction when computing the signing digest, so signatures made for one
// network can never replay on another.
type Network struct {
	Name    string
	ChainID Bytes32
	Nodes   []string
}

// Mainnet returns the production Hive network with its well known public API
// nodes.
func Mainnet() Network {
	return Network{
		Name:    "mainnet",
		ChainID: *NewBytes32FromString(mainnetChainID),
		Nodes: []string{
			"https://api.hive.blog",
			"https://api.deathwing.me",
			"https://api.openhive.network",
			"https://rpc.mahdiyari.info",
		},
	}
}

// Testnet returns the public Hive testnet.
func Testnet() Network {
	return Network{
		Name:    "testnet",
		ChainID: *NewBytes32FromString(testnetChainID),
		Nodes: []string{
			"https://testnet.openhive.network",
		},
	}
}

const (
	mainnetChainID = "beeab0de00000000000000000000000000000000000000000000000000000000"
	testnetChainID = "18dcf0a285365fc58b71f18b3d3fec954aa0c141c44e4e5cb4cf777b9eab274e"
)

func (n Network) IsMainnet() bool {
	return n.ChainID.String() == mainnetChainID
}

func (n Network) IsTestnet() bool {
	return n.ChainID.String() == testnetChainID
}
