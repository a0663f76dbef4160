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

package hivecrypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignatureSize is the length of a compact recoverable signature: a header
// byte carrying the recovery code, then R and S.
const SignatureSize = 65

// Digest computes the signing digest of a serialized transaction:
// SHA-256 over the 32 byte chain ID followed by the transaction bytes.
func Digest(chainID [32]byte, serializedTx []byte) [sha256.Size]byte {
	h := sha256.New()
	h.Write(chainID[:])
	h.Write(serializedTx)
	var digest [sha256.Size]byte
	h.Sum(digest[:0])
	return digest
}

// SignDigest produces a compact recoverable signature over digest. The
// signature is deterministic (RFC 6979) and always has a low S value, but
// its R component is not guaranteed canonical in the chain's sense; callers
// that need a canonical signature check IsCanonical and re-sign a perturbed
// transaction, typically by bumping its expiration.
func (k *PrivateKey) SignDigest(digest [sha256.Size]byte) ([]byte, error) {
	sig := ecdsa.SignCompact(k.key, digest[:], true)
	if len(sig) != SignatureSize {
		return nil, fmt.Errorf("unexpected signature length %v", len(sig))
	}
	return sig, nil
}

// RecoverPublicKey recovers the signer's public key from a compact
// signature.
func RecoverPublicKey(sig []byte, digest [sha256.Size]byte) (*PublicKey, error) {
	key, _, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return nil, err
	}
	return &PublicKey{key: key}, nil
}

// IsCanonical reports whether a compact signature satisfies the chain's
// canonicality rule: neither R nor S may have its high bit set or a leading
// zero byte followed by a clear high bit.
func IsCanonical(sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return sig[1]&0x80 == 0 &&
		!(sig[1] == 0 && sig[2]&0x80 == 0) &&
		sig[33]&0x80 == 0 &&
		!(sig[33] == 0 && sig[34]&0x80 == 0)
}
