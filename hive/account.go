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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Condenser API methods used by the account reader.
const (
	MethodGetAccounts    = "condenser_api.get_accounts"
	MethodGetFollowCount = "condenser_api.get_follow_count"
)

// Int64 unmarshals JSON numbers that condenser_api sometimes returns as
// numbers and sometimes as quoted strings, such as raw reputations.
type Int64 int64

// UnmarshalJSON accepts both quoted and bare integers.
func (i *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer: %w", err)
	}
	*i = Int64(v)
	return nil
}

// KeyAuth is one [key, weight] pair from an authority's key_auths list.
type KeyAuth struct {
	Key    string
	Weight uint16
}

// UnmarshalJSON decodes the two element array form used by condenser_api.
func (k *KeyAuth) UnmarshalJSON(data []byte) error {
	pair := []interface{}{&k.Key, &k.Weight}
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid key auth")
	}
	return nil
}

// AccountAuth is one [account, weight] pair from an authority's
// account_auths list.
type AccountAuth struct {
	Account string
	Weight  uint16
}

// UnmarshalJSON decodes the two element array form used by condenser_api.
func (a *AccountAuth) UnmarshalJSON(data []byte) error {
	pair := []interface{}{&a.Account, &a.Weight}
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid account auth")
	}
	return nil
}

// Authority is one of an account's signing authorities (owner, active,
// posting).
type Authority struct {
	WeightThreshold uint32        `json:"weight_threshold"`
	AccountAuths    []AccountAuth `json:"account_auths"`
	KeyAuths        []KeyAuth     `json:"key_auths"`
}

// Profile is the profile object embedded in an account's posting metadata.
type Profile struct {
	Name         string `json:"name"`
	About        string `json:"about"`
	Website      string `json:"website"`
	Location     string `json:"location"`
	ProfileImage string `json:"profile_image"`
}

// Account is the shaped condenser_api account record. The fields below the
// json-tagged block are computed by GetAccount rather than unmarshaled.
type Account struct {
	Name                   string    `json:"name"`
	Created                Time      `json:"created"`
	PostCount              uint64    `json:"post_count"`
	RawReputation          Int64     `json:"reputation"`
	Balance                Asset     `json:"balance"`
	HBDBalance             Asset     `json:"hbd_balance"`
	VestingShares          Asset     `json:"vesting_shares"`
	DelegatedVestingShares Asset     `json:"delegated_vesting_shares"`
	ReceivedVestingShares  Asset     `json:"received_vesting_shares"`
	Owner                  Authority `json:"owner"`
	Active                 Authority `json:"active"`
	Posting                Authority `json:"posting"`
	MemoKey                string    `json:"memo_key"`
	JSONMetadata           string    `json:"json_metadata"`
	PostingJSONMetadata    string    `json:"posting_json_metadata"`

	Reputation float64  `json:"-"`
	Followers  uint32   `json:"-"`
	Following  uint32   `json:"-"`
	Profile    *Profile `json:"-"`
}

// followCount is the get_follow_count result.
type followCount struct {
	Account        string `json:"account"`
	FollowerCount  uint32 `json:"follower_count"`
	FollowingCount uint32 `json:"following_count"`
}

// GetAccount returns the shaped account record for name, or nil if no such
// account exists. The username is validated before any network call is made,
// so a malformed name fails with a ValidationError without touching a node.
func GetAccount(ctx context.Context, c Caller, name string) (*Account, error) {
	if err := ValidateUsername(name); err != nil {
		return nil, err
	}

	var accounts []*Account
	params := []interface{}{[]string{name}}
	if err := c.Call(ctx, MethodGetAccounts, params, &accounts); err != nil {
		return nil, err
	}
	if len(accounts) == 0 || accounts[0] == nil {
		return nil, nil
	}
	account := accounts[0]

	account.Reputation = ReputationScore(int64(account.RawReputation))
	account.Profile = parseProfile(account.PostingJSONMetadata)
	if account.Profile == nil {
		account.Profile = parseProfile(account.JSONMetadata)
	}

	var follows followCount
	if err := c.Call(ctx, MethodGetFollowCount,
		[]interface{}{name}, &follows); err != nil {
		return nil, err
	}
	account.Followers = follows.FollowerCount
	account.Following = follows.FollowingCount

	return account, nil
}

// parseProfile digs the profile object out of a metadata string. Accounts
// routinely carry empty or malformed metadata; that is not an error, just an
// absent profile.
func parseProfile(metadata string) *Profile {
	if metadata == "" {
		return nil
	}
	var wrapper struct {
		Profile *Profile `json:"profile"`
	}
	if err := json.Unmarshal([]byte(metadata), &wrapper); err != nil {
		return nil
	}
	return wrapper.Profile
}
