package hive

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaller answers each method with a canned JSON payload and counts how
// many calls the readers actually make.
type fakeCaller struct {
	calls     int
	responses map[string]string
}

func (f *fakeCaller) Call(_ context.Context,
	method string, params, result interface{}) error {
	f.calls++
	payload, ok := f.responses[method]
	if !ok {
		return fmt.Errorf("unexpected method %v", method)
	}
	return json.Unmarshal([]byte(payload), result)
}

const accountJSON = `[{
	"name": "alice",
	"created": "2020-01-02T03:04:05",
	"post_count": 42,
	"reputation": "10000000000000",
	"balance": "1.000 HIVE",
	"hbd_balance": "2.500 HBD",
	"vesting_shares": "1000.000000 VESTS",
	"delegated_vesting_shares": "0.000000 VESTS",
	"received_vesting_shares": "0.000000 VESTS",
	"posting": {
		"weight_threshold": 1,
		"account_auths": [["bob", 1]],
		"key_auths": [["STM7abc", 1]]
	},
	"memo_key": "STM7abc",
	"json_metadata": "{\"profile\":{\"name\":\"Old Alice\"}}",
	"posting_json_metadata": "{\"profile\":{\"name\":\"Alice\",\"about\":\"hi\"}}"
}]`

func TestGetAccount(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeCaller{responses: map[string]string{
		MethodGetAccounts: accountJSON,
		MethodGetFollowCount: `{"account": "alice",
			"follower_count": 7, "following_count": 3}`,
	}}

	account, err := GetAccount(context.Background(), c, "alice")
	require.NoError(err)
	require.NotNil(account)

	assert.Equal("alice", account.Name)
	assert.EqualValues(42, account.PostCount)
	assert.Equal("1.000 HIVE", account.Balance.String())
	assert.Equal("2.500 HBD", account.HBDBalance.String())

	// Raw 1e13 maps to (13 - 9) * 9 + 25.
	assert.InDelta(61, account.Reputation, 0.001)

	assert.EqualValues(7, account.Followers)
	assert.EqualValues(3, account.Following)

	// The posting metadata profile wins over json_metadata.
	require.NotNil(account.Profile)
	assert.Equal("Alice", account.Profile.Name)
	assert.Equal("hi", account.Profile.About)

	require.Len(account.Posting.KeyAuths, 1)
	assert.Equal("STM7abc", account.Posting.KeyAuths[0].Key)
	assert.EqualValues(1, account.Posting.KeyAuths[0].Weight)
	require.Len(account.Posting.AccountAuths, 1)
	assert.Equal("bob", account.Posting.AccountAuths[0].Account)

	assert.Equal(2, c.calls)
}

func TestGetAccountMissing(t *testing.T) {
	assert := assert.New(t)

	c := &fakeCaller{responses: map[string]string{
		MethodGetAccounts: `[]`,
	}}

	account, err := GetAccount(context.Background(), c, "noexist")
	assert.NoError(err)
	assert.Nil(account)
	assert.Equal(1, c.calls, "no follow count lookup for a missing account")
}

func TestGetAccountInvalidName(t *testing.T) {
	assert := assert.New(t)

	c := &fakeCaller{}
	_, err := GetAccount(context.Background(), c, "x")

	var vErr ValidationError
	assert.ErrorAs(err, &vErr)
	assert.Zero(c.calls, "validation must precede any network call")
}

func TestGetAccountFallbackProfile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeCaller{responses: map[string]string{
		MethodGetAccounts: `[{
			"name": "bob",
			"json_metadata": "{\"profile\":{\"name\":\"Bob\"}}",
			"posting_json_metadata": ""
		}]`,
		MethodGetFollowCount: `{"account": "bob"}`,
	}}

	account, err := GetAccount(context.Background(), c, "bob")
	require.NoError(err)
	require.NotNil(account)
	require.NotNil(account.Profile)
	assert.Equal("Bob", account.Profile.Name)
}

func TestReputationScore(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(25, ReputationScore(0), 0.001)
	assert.InDelta(25, ReputationScore(1000000000), 0.001)
	assert.InDelta(61, ReputationScore(10000000000000), 0.001)
	assert.InDelta(-11, ReputationScore(-10000000000000), 0.001)
}

func TestInt64UnmarshalJSON(t *testing.T) {
	assert := assert.New(t)

	var i Int64
	assert.NoError(json.Unmarshal([]byte(`"123"`), &i))
	assert.EqualValues(123, i)
	assert.NoError(json.Unmarshal([]byte(`-45`), &i))
	assert.EqualValues(-45, i)
	assert.Error(json.Unmarshal([]byte(`"abc"`), &i))
}
