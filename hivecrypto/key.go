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

// Package hivecrypto adapts an external secp256k1 implementation to the two
// capabilities the rest of the library needs: parsing WIF encoded private
// keys and signing transaction digests. No elliptic curve math lives here.
//
// A Hive WIF is the 32 byte secret behind a 0x80 version byte, base58check
// encoded with a double SHA-256 checksum. A public key travels as "STM" (or
// "TST" on testnets) followed by the base58 encoding of the 33 byte
// compressed point and the first 4 bytes of its RIPEMD-160 hash.
package hivecrypto

import (
	"bytes"
	"fmt"

	"github.com/Factom-Asset-Tokens/base58"
	btcbase58 "github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// ErrInvalidKey is wrapped by every key parsing failure, so callers can
// treat all malformed key material uniformly with errors.Is.
var ErrInvalidKey = fmt.Errorf("invalid key format")

// wifVersion is the version byte of a WIF encoded private key.
const wifVersion = 0x80

// PublicKeyPrefix is the human readable prefix of mainnet public keys.
const PublicKeyPrefix = "STM"

// pubKeyChecksumLen is how many RIPEMD-160 bytes follow the point in the
// encoded form.
const pubKeyChecksumLen = 4

// PrivateKey is a parsed Hive private key, capable of signing digests.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// ParsePrivateKey decodes a WIF encoded private key. All failures, from bad
// base58 to a wrong version byte, wrap ErrInvalidKey. No network I/O is ever
// involved; a bad key fails before anything else happens.
func ParsePrivateKey(wif string) (*PrivateKey, error) {
	payload, version, err := base58.CheckDecode(wif, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(version) != 1 || version[0] != wifVersion {
		return nil, fmt.Errorf("%w: bad version byte", ErrInvalidKey)
	}
	if len(payload) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: bad payload length", ErrInvalidKey)
	}
	key := secp256k1.PrivKeyFromBytes(payload)
	if key.Key.IsZero() {
		return nil, fmt.Errorf("%w: zero key", ErrInvalidKey)
	}
	return &PrivateKey{key: key}, nil
}

// WIF re-encodes the private key into its WIF form.
func (k *PrivateKey) WIF() string {
	return base58.CheckEncode(k.key.Serialize(), wifVersion)
}

// Public returns the corresponding public key.
func (k *PrivateKey) Public() PublicKey {
	return PublicKey{key: k.key.PubKey()}
}

// PublicKey is a parsed Hive public key.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// ParsePublicKey decodes the "STM..." string form of a public key. Any
// prefix of 3 uppercase characters is accepted, so testnet "TST..." keys
// parse too.
func ParsePublicKey(s string) (*PublicKey, error) {
	if len(s) <= len(PublicKeyPrefix) {
		return nil, fmt.Errorf("%w: too short", ErrInvalidKey)
	}
	decoded := btcbase58.Decode(s[len(PublicKeyPrefix):])
	if len(decoded) != secp256k1.PubKeyBytesLenCompressed+pubKeyChecksumLen {
		return nil, fmt.Errorf("%w: bad length", ErrInvalidKey)
	}
	point := decoded[:secp256k1.PubKeyBytesLenCompressed]
	checksum := decoded[secp256k1.PubKeyBytesLenCompressed:]
	if !bytes.Equal(checksum, ripemd160Checksum(point)) {
		return nil, fmt.Errorf("%w: bad checksum", ErrInvalidKey)
	}
	key, err := secp256k1.ParsePubKey(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &PublicKey{key: key}, nil
}

// String encodes the public key into its mainnet "STM..." form.
func (k PublicKey) String() string {
	point := k.key.SerializeCompressed()
	encoded := make([]byte, 0,
		secp256k1.PubKeyBytesLenCompressed+pubKeyChecksumLen)
	encoded = append(encoded, point...)
	encoded = append(encoded, ripemd160Checksum(point)...)
	return PublicKeyPrefix + btcbase58.Encode(encoded)
}

// SerializeCompressed returns the 33 byte compressed point.
func (k PublicKey) SerializeCompressed() []byte {
	return k.key.SerializeCompressed()
}

func ripemd160Checksum(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)[:pubKeyChecksumLen]
}
