// Package ops builds, signs and broadcasts Hive operations: creating and
// editing posts, and voting. Write operations report validation,
// authorization and network failures as data in their Result so that a
// caller driving many writes can keep going; only malformed key material is
// returned as an error, and that happens before any network I/O.
package ops

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hive-tools/hivekit/hive"
	"github.com/hive-tools/hivekit/hivecrypto"
)

// Client is the slice of hive.Client the write path needs: RPC calls, the
// chain ID for signing digests, and the TaPoS cache for anchoring
// transactions. Tests substitute fakes.
type Client interface {
	hive.Caller
	ChainID() hive.Bytes32
	TaposCache(ctx context.Context) (hive.TaposEntry, error)
}

// Credentials authorize content operations for one account. They are
// supplied per call, never stored, and never logged.
type Credentials struct {
	Username   string
	PostingWIF string
}

// Result is the outcome of one write operation.
type Result struct {
	Success       bool
	TransactionID string
	Permlink      string
	Err           error
}

func failure(err error) Result {
	return Result{Err: err}
}

// maxCanonicalAttempts bounds the expiration-bump loop in sign. Each attempt
// is an independent coin flip on R's high bit, so the chance of exhausting
// the budget is negligible.
const maxCanonicalAttempts = 32

// sign signs tx in place. Deterministic signatures cannot be retried on the
// same bytes, so when a signature comes out non-canonical the transaction's
// expiration is bumped by a second and the new digest signed instead.
func sign(chainID hive.Bytes32, key *hivecrypto.PrivateKey,
	tx *hive.Transaction) error {

	for attempt := 0; attempt < maxCanonicalAttempts; attempt++ {
		digest := hivecrypto.Digest(chainID, tx.MarshalBinary())
		sig, err := key.SignDigest(digest)
		if err != nil {
			return err
		}
		if hivecrypto.IsCanonical(sig) {
			tx.Signatures = []string{hex.EncodeToString(sig)}
			return nil
		}
		tx.Expiration = hive.NewTime(tx.Expiration.Add(time.Second))
	}
	return fmt.Errorf("no canonical signature after %v attempts",
		maxCanonicalAttempts)
}

// broadcast anchors, signs and submits ops as one transaction.
func broadcast(ctx context.Context, c Client, key *hivecrypto.PrivateKey,
	operations ...hive.Operation) Result {

	tapos, err := c.TaposCache(ctx)
	if err != nil {
		return failure(err)
	}
	tx := hive.NewTransaction(tapos, operations...)
	if err := sign(c.ChainID(), key, tx); err != nil {
		return failure(err)
	}
	result, err := tx.Broadcast(ctx, c)
	if err != nil {
		return failure(err)
	}
	return Result{Success: true, TransactionID: result.ID}
}
