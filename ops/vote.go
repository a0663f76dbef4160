package ops

import (
	"context"

	"github.com/hive-tools/hivekit/hive"
	"github.com/hive-tools/hivekit/hivecrypto"
)

// MaxVoteWeight is a full-strength vote in basis points.
const MaxVoteWeight = 10000

// Upvote votes on author/permlink with the given weight in basis points,
// 0 to 10000. Out-of-range weights and malformed names fail in the Result
// before anything is signed or sent; a malformed WIF is returned as an error.
func Upvote(ctx context.Context, c Client, creds Credentials,
	author, permlink string, weight int16) (Result, error) {

	key, err := hivecrypto.ParsePrivateKey(creds.PostingWIF)
	if err != nil {
		return Result{}, err
	}

	if weight < 0 || weight > MaxVoteWeight {
		return failure(hive.ValidationError{Field: "weight",
			Reason: "must be between 0 and 10000 basis points"}), nil
	}
	if err := hive.ValidateUsername(creds.Username); err != nil {
		return failure(err), nil
	}
	if err := hive.ValidateUsername(author); err != nil {
		return failure(err), nil
	}
	if err := hive.ValidatePermlink(permlink); err != nil {
		return failure(err), nil
	}

	op := hive.VoteOperation{
		Voter:    creds.Username,
		Author:   author,
		Permlink: permlink,
		Weight:   weight,
	}
	result := broadcast(ctx, c, key, op)
	result.Permlink = permlink
	return result, nil
}
